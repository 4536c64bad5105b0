package serverhttp

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/config"
)

const catalogJSON = `{"products":[
	{"product_id":"A1","name":"Aqua Serum 30ml","brand":"Genosys","description":"light hydrating serum"},
	{"product_id":"A2","name":"Aqua Serum 30 ml","brand":"Genosys"},
	{"product_id":"A3","name":"Aqua Serum 60ml","brand":"Genosys"},
	{"product_id":"T1","name":"Night Cream","brand":"Theraderm"},
	{"product_id":"T1","name":"Day Cream","brand":"Theraderm"}
]}`

func testConfig() config.Config {
	return config.Config{
		AllowOrigins:   []string{"*"},
		MaxUploadMB:    1,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, f := range files {
		fw, err := mw.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, err = fw.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func do(t *testing.T, h http.Handler, path string, body *bytes.Buffer, ct string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := NewRouter(testConfig(), zerolog.Nop())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDedupeEndpoint(t *testing.T) {
	h := NewRouter(testConfig(), zerolog.Nop())
	body, ct := multipartBody(t, nil, map[string][2]string{"file": {"products.json", catalogJSON}})
	rec := do(t, h, "/dedupe", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 5, res.TotalRecords)
	require.Len(t, res.Partitions, 2)

	g := res.Partitions[0]
	assert.Equal(t, "Genosys", g.Brand)
	assert.Equal(t, 1, g.Exact)
	assert.Equal(t, "A1", g.Findings[0].A.ID)
	assert.Equal(t, "A2", g.Findings[0].B.ID)
	assert.Equal(t, model.ActionRemoveSecond, g.Findings[0].Recommendation.Action)
	for _, f := range g.Findings[1:] {
		assert.Equal(t, model.TierNearDuplicate, f.Tier)
		assert.Equal(t, model.ActionKeepBoth, f.Recommendation.Action)
	}

	assert.Equal(t, 1, res.Partitions[1].Conflicts)
}

func TestDedupeBrandFilter(t *testing.T) {
	h := NewRouter(testConfig(), zerolog.Nop())
	body, ct := multipartBody(t,
		map[string]string{"brands": "theraderm"},
		map[string][2]string{"file": {"products.json", catalogJSON}})
	rec := do(t, h, "/dedupe", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Partitions, 1)
	assert.Equal(t, "Theraderm", res.Partitions[0].Brand)
}

func TestDedupeRejectsMissingCatalog(t *testing.T) {
	h := NewRouter(testConfig(), zerolog.Nop())

	body, ct := multipartBody(t, map[string]string{"brands": "x"}, nil)
	rec := do(t, h, "/dedupe", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, nil, map[string][2]string{"file": {"products.json", `{"items":[]}`}})
	rec = do(t, h, "/dedupe", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrNoRecords.Error())
}

func TestMatchEndpoint(t *testing.T) {
	h := NewRouter(testConfig(), zerolog.Nop())
	body, ct := multipartBody(t,
		map[string]string{"images": "A1-main.jpg\naqua-serum-60ml-main.jpg\nunrelated-main.jpg"},
		map[string][2]string{"file": {"products.json", catalogJSON}})
	rec := do(t, h, "/match", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	by := res.ByProduct()
	assert.Equal(t, model.TierDirect, by["A1"].Tier)
	assert.Equal(t, 1, res.Direct)
	assert.Equal(t, 4, res.TotalProducts)
	assert.Equal(t, 3, res.TotalImages)

	seen := map[string]bool{}
	for _, a := range res.Assignments {
		assert.False(t, seen[a.ImageKey])
		seen[a.ImageKey] = true
	}
}

func TestMatchImagesFile(t *testing.T) {
	h := NewRouter(testConfig(), zerolog.Nop())
	body, ct := multipartBody(t, nil, map[string][2]string{
		"file":        {"products.json", catalogJSON},
		"images_file": {"images.txt", "T1-main.jpg, A2-main.jpg"},
	})
	rec := do(t, h, "/match", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Direct)
}

func TestMatchRequiresImages(t *testing.T) {
	h := NewRouter(testConfig(), zerolog.Nop())
	body, ct := multipartBody(t, nil, map[string][2]string{"file": {"products.json", catalogJSON}})
	rec := do(t, h, "/match", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrNoImages.Error())
}

func TestRateLimitedRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	h := NewRouter(cfg, zerolog.Nop())

	body, ct := multipartBody(t, nil, map[string][2]string{"file": {"products.json", catalogJSON}})
	assert.Equal(t, http.StatusOK, do(t, h, "/dedupe", body, ct).Code)

	body, ct = multipartBody(t, nil, map[string][2]string{"file": {"products.json", catalogJSON}})
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, "/dedupe", body, ct).Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	cfg.TrustProxy = true
	h := NewRouter(cfg, zerolog.Nop())

	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		body, ct := multipartBody(t, nil, map[string][2]string{"file": {"products.json", catalogJSON}})
		req := httptest.NewRequest(http.MethodPost, "/dedupe", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, ip)
	}
}
