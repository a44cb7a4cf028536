package records

import (
	"net/http"

	"github.com/zhouzirui/z-ledger/backend/internal/model/book"
	"github.com/zhouzirui/z-ledger/backend/internal/model/contact"
	"github.com/zhouzirui/z-ledger/backend/internal/model/shopping"
	"github.com/zhouzirui/z-ledger/backend/internal/model/task"
	"github.com/zhouzirui/z-ledger/backend/internal/service/registry"
)

// NewContacts 通讯录路由 /contacts
func NewContacts(svc *registry.Service[*contact.Contact]) *Handler[*contact.Contact] {
	return New("/contacts", svc, decodeContact)
}

func decodeContact(r *http.Request) (*contact.Contact, error) {
	var payload struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return contact.New(payload.Name, payload.Phone, payload.Email)
}

// NewBooks 图书馆路由 /books
func NewBooks(svc *registry.Service[*book.Book]) *Handler[*book.Book] {
	return New("/books", svc, decodeBook)
}

func decodeBook(r *http.Request) (*book.Book, error) {
	var payload struct {
		Title  string `json:"title"`
		Author string `json:"author"`
		Year   int    `json:"year"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return book.New(payload.Title, payload.Author, payload.Year)
}

// NewShopping 购物清单路由 /shopping，附带 POST /shopping/{id}/purchase
func NewShopping(svc *registry.Service[*shopping.Item]) *Handler[*shopping.Item] {
	return New("/shopping", svc, decodeItem,
		WithMark("purchase", shopping.MarkPurchased),
	)
}

func decodeItem(r *http.Request) (*shopping.Item, error) {
	var payload struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return shopping.New(payload.Name, payload.Quantity)
}

// NewTasks 待办事项路由 /tasks，支持ID前缀、?pending=true 与 POST /tasks/{id}/complete
func NewTasks(svc *registry.Service[*task.Task]) *Handler[*task.Task] {
	return New("/tasks", svc, decodeTask,
		WithMark("complete", task.Complete),
		WithFilter("pending", task.Pending),
		WithPrefixLookup[*task.Task](),
	)
}

func decodeTask(r *http.Request) (*task.Task, error) {
	var payload struct {
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return task.New(payload.Description, payload.Priority)
}
