package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demo-018/indiveg-hub/api/controllers"
	"github.com/demo-018/indiveg-hub/internal/auth"
	"github.com/demo-018/indiveg-hub/internal/cart"
	"github.com/demo-018/indiveg-hub/internal/catalog"
	"github.com/demo-018/indiveg-hub/internal/notifications"
	"github.com/demo-018/indiveg-hub/internal/orders"
	"github.com/demo-018/indiveg-hub/internal/seed"
	"github.com/demo-018/indiveg-hub/internal/users"
	pkgauth "github.com/demo-018/indiveg-hub/pkg/auth"
	"github.com/demo-018/indiveg-hub/pkg/auth/session"
	"github.com/demo-018/indiveg-hub/pkg/config"
	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/metrics"
	"github.com/demo-018/indiveg-hub/pkg/redis"
	"github.com/demo-018/indiveg-hub/pkg/security"
)

type fakeRedisStore struct {
	data     map[string]string
	counters map[string]int64
}

func newFakeRedisStore() *fakeRedisStore {
	return &fakeRedisStore{data: map[string]string{}, counters: map[string]int64{}}
}

func (f *fakeRedisStore) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (f *fakeRedisStore) Get(_ context.Context, key string) *goredis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedisStore) Set(_ context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedisStore) SetNX(_ context.Context, key string, value any, _ time.Duration) *goredis.BoolCmd {
	if _, exists := f.data[key]; exists {
		return goredis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeRedisStore) Incr(_ context.Context, key string) *goredis.IntCmd {
	f.counters[key]++
	return goredis.NewIntResult(f.counters[key], nil)
}

func (f *fakeRedisStore) Expire(_ context.Context, _ string, _ time.Duration) *goredis.BoolCmd {
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeRedisStore) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	for _, key := range keys {
		delete(f.data, key)
		delete(f.counters, key)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type testEnv struct {
	handler http.Handler
	fake    *fakeRedisStore
}

var routerTestSeq int

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	log := logger.New(logger.Options{ServiceName: "test", Output: discardWriter{}})

	routerTestSeq++
	client, err := db.NewSQLite(fmt.Sprintf("router-test-%d", routerTestSeq))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	hasher := security.NewHasher(cfg.Password)
	seeder, err := seed.New(client, hasher, log)
	require.NoError(t, err)
	require.NoError(t, seeder.Run(context.Background()))

	fake := newFakeRedisStore()
	rdb := redis.NewFromClient(fake)

	tokens := pkgauth.NewTokenIssuer(cfg.JWT)
	sessions, err := session.NewManager(rdb, cfg.JWT.SessionTTL)
	require.NoError(t, err)
	m := metrics.New(cfg.App.Name)

	catalogRepo, err := catalog.NewRepo(client)
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)

	usersRepo, err := users.NewRepo(client)
	require.NoError(t, err)
	usersSvc, err := users.NewService(usersRepo)
	require.NoError(t, err)

	cartStore, err := cart.NewStore(rdb, log)
	require.NoError(t, err)
	cartSvc, err := cart.NewService(cartStore, catalogSvc)
	require.NoError(t, err)

	authSvc, err := auth.NewService(usersRepo, hasher, tokens, sessions, rdb, cartSvc, cfg.Demo, log)
	require.NoError(t, err)

	notificationsRepo, err := notifications.NewRepo(client)
	require.NoError(t, err)
	notificationsSvc, err := notifications.NewService(notificationsRepo)
	require.NoError(t, err)

	ordersRepo, err := orders.NewRepo(client)
	require.NoError(t, err)
	ordersSvc, err := orders.NewService(ordersRepo, cartSvc, usersSvc, notificationsSvc, m, cfg.Checkout, log)
	require.NoError(t, err)

	handler := New(Deps{
		Config:        cfg,
		Log:           log,
		Redis:         rdb,
		Tokens:        tokens,
		Sessions:      sessions,
		Metrics:       m,
		Health:        controllers.NewHealthController(client, rdb, log),
		Auth:          controllers.NewAuthController(authSvc),
		Catalog:       controllers.NewCatalogController(catalogSvc),
		Cart:          controllers.NewCartController(cartSvc),
		Orders:        controllers.NewOrdersController(ordersSvc),
		Profile:       controllers.NewProfileController(usersSvc),
		Notifications: controllers.NewNotificationsController(notificationsSvc),
	})
	return &testEnv{handler: handler, fake: fake}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID     string `json:"ID"`
		Mobile string `json:"Mobile"`
	} `json:"user"`
}

func (e *testEnv) login(t *testing.T) loginResponse {
	t.Helper()

	body := fmt.Sprintf(`{"mobile":%q,"password":%q}`, seed.DemoMobile, seed.DemoPassword)
	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result loginResponse
	decodeData(t, rec, &result)
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.RefreshToken)
	return result
}

func TestLoginCartCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", login.Token,
		`{"productId":"spinach","quantity":2}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cartView struct {
		Items []struct {
			Quantity string `json:"quantity"`
		} `json:"items"`
	}
	decodeData(t, rec, &cartView)
	require.Len(t, cartView.Items, 1)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	checkoutBody := fmt.Sprintf(`{"deliveryDate":%q}`, tomorrow)
	headers := map[string]string{"Idempotency-Key": "checkout-1"}

	rec = env.do(t, http.MethodPost, "/api/v1/checkout", login.Token, checkoutBody, headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order struct {
		ID            string `json:"ID"`
		Status        string `json:"Status"`
		ContactMobile string `json:"ContactMobile"`
	}
	decodeData(t, rec, &order)
	assert.Equal(t, "placed", order.Status)
	assert.Equal(t, seed.DemoMobile, order.ContactMobile)

	// Retrying with the same key replays the stored response instead
	// of placing a second order.
	replay := env.do(t, http.MethodPost, "/api/v1/checkout", login.Token, checkoutBody, headers)
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, rec.Body.String(), replay.Body.String())

	// The cart was cleared by the first checkout.
	rec = env.do(t, http.MethodGet, "/api/v1/cart", login.Token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cartView)
	assert.Empty(t, cartView.Items)
}

func TestCheckoutWithoutIdempotencyKey(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	rec := env.do(t, http.MethodPost, "/api/v1/checkout", login.Token,
		fmt.Sprintf(`{"deliveryDate":%q}`, tomorrow), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", login.Token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout", login.Token, "", nil)
	require.Less(t, rec.Code, 300, rec.Body.String())

	// The token itself is still unexpired; only the session is gone.
	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", login.Token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCorruptSessionStateIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t)

	env.fake.data[redis.SessionKey(login.User.ID)] = "{not json"

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", login.Token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}
