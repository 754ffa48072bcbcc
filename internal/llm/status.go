package llm

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/anthropics/anthropic-sdk-go"
	ollamaapi "github.com/eino-contrib/ollama/api"
	openaisdk "github.com/meguminnnnnnnnn/go-openai"
	"google.golang.org/genai"
)

// statusPattern matches how the provider SDKs print an HTTP status:
// "status code: 400", "Error 400,", "400 Bad Request".
var statusPattern = regexp.MustCompile(`(?i)\bstatus(?: ?code)?[:= ]\s*(\d{3})\b|\berror (\d{3})\b|\b(\d{3}) (?:bad request|unauthorized|forbidden|not found|too many requests|internal server error)\b`)

// httpStatus extracts the HTTP status code carried by a provider error, or 0.
func httpStatus(err error) int {
	if err == nil {
		return 0
	}

	var oaiAPI *openaisdk.APIError
	if errors.As(err, &oaiAPI) && oaiAPI.HTTPStatusCode > 0 {
		return oaiAPI.HTTPStatusCode
	}
	var oaiReq *openaisdk.RequestError
	if errors.As(err, &oaiReq) && oaiReq.HTTPStatusCode > 0 {
		return oaiReq.HTTPStatusCode
	}
	var claudeErr *anthropic.Error
	if errors.As(err, &claudeErr) && claudeErr.StatusCode > 0 {
		return claudeErr.StatusCode
	}
	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) && geminiErr.Code > 0 {
		return geminiErr.Code
	}
	var ollamaErr ollamaapi.StatusError
	if errors.As(err, &ollamaErr) && ollamaErr.StatusCode > 0 {
		return ollamaErr.StatusCode
	}

	// Some wrappers flatten the SDK error into a string.
	m := statusPattern.FindStringSubmatch(err.Error())
	for i := 1; i < len(m); i++ {
		if code, err := strconv.Atoi(m[i]); err == nil {
			return code
		}
	}
	return 0
}

// toolsRejected reports whether the provider refused the request itself, which is
// how models without tool support answer a tool binding.
func toolsRejected(err error) bool {
	return httpStatus(err) == http.StatusBadRequest
}
