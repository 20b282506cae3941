package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	successResponse       = mustMarshal(Response{Code: 200, Message: "Success"})
	notFoundResponse      = mustMarshal(Response{Code: 404, Message: "Not Found"})
	unauthorizedResponse  = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	internalErrorResponse = mustMarshal(Response{Code: 500, Message: "Internal Server Error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := jsonAPI.Marshal(v)
	return b
}

// Marshal encodes with the same settings as the response writer. Nil slices
// and maps come out as [] and {}.
func Marshal(v interface{}) ([]byte, error) {
	return jsonAPI.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return jsonAPI.Unmarshal(data, v)
}

func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	var body []byte
	if data == nil {
		switch {
		case httpCode == 200 && message == "Success":
			body = successResponse
		case httpCode == 404 && message == "Not Found":
			body = notFoundResponse
		case httpCode == 401 && message == "Unauthorized":
			body = unauthorizedResponse
		case httpCode == 500 && message == "Internal Server Error":
			body = internalErrorResponse
		}
	}

	if body == nil {
		var err error
		body, err = jsonAPI.Marshal(Response{
			Code:    httpCode,
			Message: message,
			Data:    data,
		})
		if err != nil {
			return err
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(body)
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, fiber.StatusOK, "Success", data)
}
