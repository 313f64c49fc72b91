package apigw

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// ResponseWriter отвечает за формирование HTTP ответов из прокси-ответа
type ResponseWriter struct{}

// NewResponseWriter создает новый экземпляр writer'а ответов
func NewResponseWriter() *ResponseWriter {
	return &ResponseWriter{}
}

// WriteResponse записывает APIGatewayProxyResponse в http.ResponseWriter
func (rw *ResponseWriter) WriteResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) error {
	logger.Debug("Writing response: status=%d, bodyBytes=%d, base64=%t",
		resp.StatusCode, len(resp.Body), resp.IsBase64Encoded)

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			return rw.WriteError(w, http.StatusBadGateway, "Malformed Lambda proxy response")
		}
		body = decoded
	}

	// MultiValueHeaders дополняют Headers, как у шлюза
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	for key, values := range resp.MultiValueHeaders {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		logger.Debug("Error writing response body: %v", err)
		return err
	}
	return nil
}

// WriteError записывает ответ шлюза об ошибке в формате {"message": ...}
func (rw *ResponseWriter) WriteError(w http.ResponseWriter, status int, message string) error {
	data, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(status)

	_, err = w.Write(data)
	return err
}
