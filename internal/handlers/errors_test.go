package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alimgiray/inbox/internal/models"
	"github.com/alimgiray/inbox/internal/repositories"
	"github.com/alimgiray/inbox/internal/services"
	"github.com/alimgiray/inbox/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "Storage failure",
			err:            &models.StorageError{Op: "list emails", Err: errors.New("disk I/O error")},
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "Database error: failed to list emails: disk I/O error",
		},
		{
			name:           "Other failure",
			err:            errors.New("failed to write export row: bad cell"),
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "Internal server error: failed to write export row: bad cell",
		},
		{
			name:           "Not found",
			err:            models.ErrEmailNotFound,
			expectedStatus: http.StatusNotFound,
			expectedDetail: "Email not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/emails", nil)

			respondError(c, tc.err)

			assert.Equal(t, tc.expectedStatus, w.Code)
			var response struct {
				Detail string `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tc.expectedDetail, response.Detail)
		})
	}
}

func TestStorageFailureIsReported(t *testing.T) {
	store := testutil.NewEmptyStore(t)
	emailService := services.NewEmailService(repositories.NewEmailRepository(store))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, NewEmailHandler(emailService), NewExportHandler(services.NewExportService(emailService)))

	testutil.Exec(t, store, "DROP TABLE emails")

	for _, path := range []string{"/emails", "/exports/emails"} {
		w := doRequest(t, router, "GET", path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.True(t, strings.Contains(w.Body.String(), "Database error: failed to list emails"), path)
	}
}
