// Package response is the JSON envelope every endpoint answers with. The HTTP status is
// always 200; the outcome travels in Code.
package response

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// Page is the data of a paged list.
type Page[T any] struct {
	List  []T `json:"list"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data any) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// Paginate slices items for page (1-based) of size. Out-of-range pages are empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	n := max(size, 0)
	skip := max(page-1, 0)
	from := total
	// skip*n only when it cannot pass total, so huge pages cannot overflow.
	if n == 0 || skip <= total/n {
		from = skip * n
	}
	to := min(from+n, total)
	list := items[from:to]
	if list == nil {
		list = []T{}
	}
	return Page[T]{List: list, Total: total, Page: page, Size: size}
}
