package i18n

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New("en")
	require.NoError(t, err)
	return tr
}

func TestTranslator_For(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "en"},
		{"chinese", "zh-CN,zh;q=0.9,en;q=0.8", "zh"},
		{"english first", "en-US,zh;q=0.5", "en"},
		{"unsupported falls back", "fr-FR", "en"},
		{"quality order respected", "fr;q=0.9,zh;q=0.8", "zh"},
		{"garbage", "!!!", "en"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tr.For(tt.header).Locale())
		})
	}
}

func TestTranslator_DefaultLanguage(t *testing.T) {
	t.Parallel()

	tr, err := New("zh")
	require.NoError(t, err)
	assert.Equal(t, "zh", tr.For("").Locale())

	unknown, err := New("xx")
	require.NoError(t, err)
	assert.Equal(t, "en", unknown.For("").Locale())
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	assert.Equal(t, "用户已存在", Message(tr.For("zh"), "user.exists", "fallback"))
	assert.Equal(t, "user already exists", Message(tr.For("en"), "user.exists", "fallback"))
	assert.Equal(t, "fallback", Message(tr.For("en"), "no.such.key", "fallback"))
	assert.Equal(t, "fallback", Message(nil, "user.exists", "fallback"))
	assert.Equal(t, "fallback", Message(tr.For("en"), "", "fallback"))
}

func TestCatalog_LocalesHaveSameKeys(t *testing.T) {
	t.Parallel()

	for key := range catalog["en"] {
		_, ok := catalog["zh"][key]
		assert.True(t, ok, "zh catalog is missing %q", key)
	}
	assert.Equal(t, len(catalog["en"]), len(catalog["zh"]))
}

func TestRegisterValidator_TranslatesWithJSONNames(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	v := validator.New()
	require.NoError(t, tr.RegisterValidator(v))

	type req struct {
		Username string `json:"username" validate:"required"`
	}
	err := v.Struct(req{})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "username", verrs[0].Field())

	en := verrs.Translate(tr.For("en"))
	assert.Contains(t, en["req.username"], "username is a required field")
	zh := verrs.Translate(tr.For("zh"))
	assert.Contains(t, zh["req.username"], "username为必填字段")
}

func TestMiddleware_SetsTranslator(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	r := gin.New()
	r.Use(tr.Middleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, FromContext(c).Locale())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-TW")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "zh", w.Body.String())
}

func TestFromContext_Missing(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, FromContext(c))
}
