package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	"github.com/zhouzirui/z-ledger/backend/internal/service/registry"
	"github.com/zhouzirui/z-ledger/backend/pkg/utils"
)

var errInvalidBody = errors.New("invalid request body")

// Decoder 将请求体解析并构造为记录，构造失败返回 record.ValidationError
type Decoder[T record.Record] func(r *http.Request) (T, error)

// Handler 通用记录集合的HTTP处理器
type Handler[T record.Record] struct {
	path    string
	svc     *registry.Service[T]
	decode  Decoder[T]
	marks   map[string]func(T) bool
	filters map[string]func(T) bool
	prefix  bool
}

// Option 定制处理器行为
type Option[T record.Record] func(*Handler[T])

// WithMark 注册 POST {path}/{id}/{action} 标记路由
func WithMark[T record.Record](action string, set func(T) bool) Option[T] {
	return func(h *Handler[T]) { h.marks[action] = set }
}

// WithFilter 注册 GET {path}?{param}=true 过滤条件
func WithFilter[T record.Record](param string, keep func(T) bool) Option[T] {
	return func(h *Handler[T]) { h.filters[param] = keep }
}

// WithPrefixLookup 允许使用ID前缀定位记录
func WithPrefixLookup[T record.Record]() Option[T] {
	return func(h *Handler[T]) { h.prefix = true }
}

// New 创建记录处理器
func New[T record.Record](path string, svc *registry.Service[T], decode Decoder[T], opts ...Option[T]) *Handler[T] {
	h := &Handler[T]{
		path:    path,
		svc:     svc,
		decode:  decode,
		marks:   make(map[string]func(T) bool),
		filters: make(map[string]func(T) bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes 注册记录相关的路由
func (h *Handler[T]) RegisterRoutes(r chi.Router) {
	r.Route(h.path, func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleRemove)
		for action, set := range h.marks {
			r.Post("/{id}/"+action, h.handleMark(set))
		}
	})
}

type listResponse[T record.Record] struct {
	Status record.Status `json:"status"`
	Items  []T           `json:"items"`
}

type itemResponse[T record.Record] struct {
	Status record.Status `json:"status"`
	Item   T             `json:"item"`
}

type removeResponse struct {
	Status record.Status `json:"status"`
	ID     string        `json:"id"`
	Label  string        `json:"label,omitempty"`
}

// handleList 列出、搜索或过滤记录
func (h *Handler[T]) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		items  []T
		status record.Status
	)
	switch {
	case query.Has("q"):
		items, status = h.svc.Search(r.Context(), query.Get("q"))
	case h.activeFilter(query) != nil:
		items = h.svc.Filter(r.Context(), h.activeFilter(query))
		status = record.StatusOK
		if len(items) == 0 {
			status = record.StatusEmpty
		}
	default:
		items, status = h.svc.List(r.Context())
	}

	if items == nil {
		items = []T{}
	}
	utils.RespondJSON(w, http.StatusOK, listResponse[T]{Status: status, Items: items})
}

// activeFilter 返回查询参数中启用的过滤条件
func (h *Handler[T]) activeFilter(query url.Values) func(T) bool {
	for param, keep := range h.filters {
		if query.Get(param) == "true" {
			return keep
		}
	}
	return nil
}

// handleCreate 构造并添加记录
func (h *Handler[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	item, err := h.decode(r)
	if err != nil {
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			utils.RespondFieldErrors(w, http.StatusUnprocessableEntity, verr.Error(), verr.Fields)
			return
		}
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, status := h.svc.Add(r.Context(), item)
	code := http.StatusCreated
	if status == record.StatusDuplicate {
		code = http.StatusOK
	}
	utils.RespondJSON(w, code, itemResponse[T]{Status: status, Item: stored})
}

// handleGet 按ID（或前缀）读取记录
func (h *Handler[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.prefix {
		item, status := h.svc.Resolve(r.Context(), id)
		if !respondLookupFailure(w, status) {
			return
		}
		utils.RespondJSON(w, http.StatusOK, itemResponse[T]{Status: status, Item: item})
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondLookupFailure(w, record.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, itemResponse[T]{Status: record.StatusOK, Item: item})
}

// handleRemove 按ID（或前缀）删除记录
func (h *Handler[T]) handleRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		removed T
		status  record.Status
	)
	if h.prefix {
		removed, status = h.svc.RemovePrefix(r.Context(), id)
	} else {
		removed, status = h.svc.Remove(r.Context(), id)
	}
	switch status {
	case record.StatusRemoved:
		utils.RespondJSON(w, http.StatusOK, removeResponse{Status: status, ID: removed.ID(), Label: removed.Label()})
	case record.StatusAmbiguous:
		respondLookupFailure(w, status)
	default:
		utils.RespondJSON(w, http.StatusNotFound, removeResponse{Status: status, ID: id})
	}
}

// handleMark 执行一次性标记，查找与标记在同一把锁内完成
func (h *Handler[T]) handleMark(set func(T) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var (
			marked T
			status record.Status
		)
		if h.prefix {
			marked, status = h.svc.MarkPrefix(r.Context(), id, set)
		} else {
			marked, status = h.svc.Mark(r.Context(), id, set)
		}
		switch status {
		case record.StatusMarked, record.StatusUnchanged:
			utils.RespondJSON(w, http.StatusOK, itemResponse[T]{Status: status, Item: marked})
		case record.StatusAmbiguous:
			respondLookupFailure(w, status)
		default:
			utils.RespondJSON(w, http.StatusNotFound, removeResponse{Status: status, ID: id})
		}
	}
}

// respondLookupFailure 写入未命中响应，返回 true 表示可以继续处理
func respondLookupFailure(w http.ResponseWriter, status record.Status) bool {
	switch status {
	case record.StatusOK:
		return true
	case record.StatusAmbiguous:
		utils.RespondJSON(w, http.StatusConflict, map[string]any{"status": status, "error": "id prefix matches several records"})
	default:
		utils.RespondJSON(w, http.StatusNotFound, map[string]any{"status": record.StatusNotFound, "error": "record not found"})
	}
	return false
}

// decodeJSON 解析请求体
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}
