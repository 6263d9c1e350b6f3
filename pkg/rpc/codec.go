// Package rpc содержит общие элементы ConnectRPC транспорта:
// JSON codec для обычных Go структур и стандартные опции handler'ов.
package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecNameJSON имя codec'а в терминах Connect протокола.
// Соответствует Content-Type application/json.
const CodecNameJSON = "json"

// JSONCodec сериализует сообщения через encoding/json.
// Позволяет использовать обычные Go структуры вместо protobuf сообщений.
type JSONCodec struct{}

// Name implements connect.Codec
func (JSONCodec) Name() string {
	return CodecNameJSON
}

// Marshal implements connect.Codec
func (JSONCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

// Unmarshal implements connect.Codec
func (JSONCodec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}

// HandlerOptions возвращает стандартный набор опций для handler'ов сервиса:
// JSON codec плюс переданные interceptors.
func HandlerOptions(interceptors ...connect.Interceptor) []connect.HandlerOption {
	opts := []connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
	}
	if len(interceptors) > 0 {
		opts = append(opts, connect.WithInterceptors(interceptors...))
	}
	return opts
}

// ClientOptions возвращает стандартный набор опций для клиентов
func ClientOptions(interceptors ...connect.Interceptor) []connect.ClientOption {
	opts := []connect.ClientOption{
		connect.WithCodec(JSONCodec{}),
	}
	if len(interceptors) > 0 {
		opts = append(opts, connect.WithInterceptors(interceptors...))
	}
	return opts
}
