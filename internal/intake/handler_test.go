package intake

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fixture) {
	t.Helper()
	f := newFixture(t, graduateRoster(), "جمهورية العراق احمد علي حسين")
	r := chi.NewRouter()
	NewHandler(f.service, nil).Register(r)
	return r, f
}

type multipartForm struct {
	fields map[string]string
	files  map[string][]byte
}

func (m multipartForm) encode(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, value := range m.fields {
		require.NoError(t, w.WriteField(name, value))
	}
	for name, data := range m.files {
		part, err := w.CreateFormFile(name, name+".jpg")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func validForm() multipartForm {
	return multipartForm{
		fields: map[string]string{
			"full_name":   "احمد على",
			"gender":      "ذكر",
			"destination": "دائرة صحة بغداد",
			"consent":     "true",
		},
		files: map[string][]byte{
			"id_front": []byte("front"),
			"id_back":  []byte("back"),
			"photo":    []byte("photo"),
		},
	}
}

func TestHandleSubmitCreated(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := validForm().encode(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/requests", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		MatchedName     string   `json:"matched_name"`
		AppointmentSlot string   `json:"appointment_slot"`
		CertificateFile string   `json:"certificate_file"`
		Notes           []string `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "أحمد علي", resp.MatchedName)
	assert.Equal(t, "09:00-10:00", resp.AppointmentSlot)
	assert.NotEmpty(t, resp.CertificateFile)
	assert.NotEmpty(t, resp.Notes)
}

func TestHandleSubmitConsentMissing(t *testing.T) {
	router, _ := newTestRouter(t)

	form := validForm()
	delete(form.fields, "consent")
	body, contentType := form.encode(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/requests", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "consent_missing", resp.Error)
}

func TestHandleSubmitNotMultipart(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString(`{"full_name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNotes(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/notes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp["notes"], len(pickupNotes))
}
