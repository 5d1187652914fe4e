package middleware

import (
	"net/http"
)

// Middleware — обёртка над http.Handler; подключается через chi.Router.Use.
type Middleware = func(http.Handler) http.Handler

// recorder запоминает, что уже ушло клиенту: статус и число байт тела.
// Recover смотрит на него, чтобы не писать второй заголовок поверх начатого ответа.
type recorder struct {
	http.ResponseWriter
	code  int
	bytes int
}

func record(w http.ResponseWriter) *recorder {
	if rec, ok := w.(*recorder); ok {
		return rec
	}
	return &recorder{ResponseWriter: w}
}

func (w *recorder) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(p []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// Unwrap даёт http.ResponseController доступ к исходному writer-у.
func (w *recorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// started — клиенту уже отправлен заголовок.
func (w *recorder) started() bool { return w.code != 0 }

// status — итоговый код; без явной записи net/http отвечает 200.
func (w *recorder) status() int {
	if w.code == 0 {
		return http.StatusOK
	}
	return w.code
}
