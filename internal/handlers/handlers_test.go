package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/middleclass/localstore/internal/catalog"
	"github.com/middleclass/localstore/internal/events"
	"github.com/middleclass/localstore/internal/notify"
	"github.com/middleclass/localstore/internal/sched"
	"github.com/middleclass/localstore/internal/search"
	"github.com/middleclass/localstore/internal/session"
	"github.com/middleclass/localstore/internal/storage"
)

const (
	testAdminEmail    = "owner@example.com"
	testAdminPassword = "admin123"
)

type testEnv struct {
	E        *echo.Echo
	KV       *storage.Memory
	Gate     *session.Gate
	Notifier *notify.Notifier
	P        *ProductHandler
	C        *CartHandler
	A        *AuthHandler
	Cur      *CurrencyHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv := storage.NewMemory()

	scheduler := sched.New()
	t.Cleanup(scheduler.Stop)
	notifier := notify.New(scheduler, time.Minute)

	gate, err := session.NewGate(kv, []byte("test-secret"), testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	producer := events.NewProducer("")
	index := &search.Index{Name: "products"}

	return &testEnv{
		E:        echo.New(),
		KV:       kv,
		Gate:     gate,
		Notifier: notifier,
		P:        &ProductHandler{Catalog: catalog.NewStore(kv), Index: index, Producer: producer, Notifier: notifier},
		C:        &CartHandler{KV: kv, Producer: producer},
		A:        &AuthHandler{Gate: gate, Notifier: notifier, Producer: producer},
		Cur:      &CurrencyHandler{},
	}
}

func (env *testEnv) doJSONRequest(t *testing.T, method, target string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
