// backend — клиент REST-бэкенда сервиса знакомств.
//
// Каждая операция — ровно один HTTP-запрос с Authorization: Bearer <token>.
// Повторов и backoff нет; таймаут, заголовки, логи и метрики живут в transport.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Anees44/trae-dating-project/internal/backend/transport"
)

// maxErrorBody — сколько тела не-2xx ответа читаем ради поля message.
const maxErrorBody = 64 << 10

type Client struct {
	base *url.URL
	http *http.Client
}

// New: baseURL — абсолютный URL API (например, http://localhost:5000/api).
func New(baseURL string, rt http.RoundTripper) (*Client, error) {
	const op = "backend/New"

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url %q is not absolute", op, baseURL)
	}

	if rt == nil {
		rt = http.DefaultTransport
	}

	return &Client{
		base: u,
		http: &http.Client{Transport: rt},
	}, nil
}

type call struct {
	op          string
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func (c *Client) url(path string) string {
	return c.base.String() + path
}

// do выполняет вызов и декодирует тело 2xx-ответа в out (если out != nil и тело не пустое).
func (c *Client) do(ctx context.Context, cl call, out any) error {
	req, err := http.NewRequestWithContext(transport.WithOperation(ctx, cl.op), cl.method, c.url(cl.path), cl.body)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.op, err)
	}

	req.Header.Set("Accept", "application/json")
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", cl.op, ctxErr)
		}

		return fmt.Errorf("%s: %w: %v", cl.op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: cl.op, Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", cl.op, ErrUnavailable, err)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", cl.op, err)
	}

	return nil
}

func (c *Client) doJSON(ctx context.Context, cl call, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", cl.op, err)
	}

	cl.body = bytes.NewReader(b)
	cl.contentType = "application/json"

	return c.do(ctx, cl, out)
}

func errorMessage(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &env) == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}

	return http.StatusText(resp.StatusCode)
}

// decodeEntity разбирает необязательную сущность из ответа мутации:
// либо сам объект, либо обёртку {"<key>": {...}}. ok=false — сущности в ответе нет.
func decodeEntity[T any](raw json.RawMessage, key string, valid func(*T) bool) (*T, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}

	var v T
	if json.Unmarshal(raw, &v) == nil && valid(&v) {
		return &v, true
	}

	var wrap map[string]json.RawMessage
	if json.Unmarshal(raw, &wrap) != nil {
		return nil, false
	}

	inner, ok := wrap[key]
	if !ok {
		return nil, false
	}

	var w T
	if json.Unmarshal(inner, &w) == nil && valid(&w) {
		return &w, true
	}

	return nil, false
}

// IsTransport сообщает, что ответа от бэкенда не было.
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
