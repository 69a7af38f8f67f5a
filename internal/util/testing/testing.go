package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Response struct {
	Code int
	Body []byte
}

type RequestOptions struct {
	Method         string
	URL            string
	Body           any
	AuthToken      string
	Headers        map[string]string
	ExpectedStatus int
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) Response {
	t.Helper()

	var bodyReader *bytes.Reader
	switch body := options.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(body))
	default:
		data, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(options.Method, options.URL, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}

	for name, value := range options.Headers {
		req.Header.Set(name, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if options.ExpectedStatus != 0 {
		assert.Equal(t, options.ExpectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	}

	return Response{
		Code: w.Code,
		Body: w.Body.Bytes(),
	}
}

func MakeGetRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         "GET",
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         "POST",
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeDeleteRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         "DELETE",
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	out any,
) {
	t.Helper()

	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, out))
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	out any,
) {
	t.Helper()

	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, out))
}

// MakeAPIRequest is the assertion-free variant used by feature testing helpers
// that panic instead of failing a *testing.T.
func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body == nil {
		bodyReader = bytes.NewReader(nil)
	} else {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}
