// Package codec frames protocol messages for the websocket.
//
// On the wire each message is a protobuf google.protobuf.Any: the type URL
// carries the message type and the value carries the JSON payload.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/protobuf/proto"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/protocol"
)

// TypeURLPrefix prefixes every message type in the envelope
const TypeURLPrefix = "type.uno.game/"

// NewMessage 创建一个新消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := GetMessage()
	msg.Type = msgType

	if payload != nil {
		buf := GetBuffer()
		defer PutBuffer(buf)

		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = bytes.TrimSuffix(bytes.Clone(buf.Bytes()), []byte("\n"))
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 将消息编码为 Protobuf 字节
func Encode(m *protocol.Message) ([]byte, error) {
	env := GetEnvelope()
	defer PutEnvelope(env)

	env.TypeUrl = TypeURLPrefix + string(m.Type)
	env.Value = m.Payload
	return proto.Marshal(env)
}

// Decode 从 Protobuf 字节解码消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func Decode(data []byte) (*protocol.Message, error) {
	env := GetEnvelope()
	defer PutEnvelope(env)

	if err := proto.Unmarshal(data, env); err != nil {
		return nil, err
	}
	msgType, ok := strings.CutPrefix(env.TypeUrl, TypeURLPrefix)
	if !ok || msgType == "" {
		return nil, fmt.Errorf("unknown message type url %q", env.TypeUrl)
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)
	if len(env.Value) > 0 {
		msg.Payload = bytes.Clone(env.Value)
	}
	return msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: protocol.ErrorMessages[code],
	})
	return msg
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
	return msg
}

// NewGameErrorMessage 把规则引擎或房间返回的错误转换为错误消息
func NewGameErrorMessage(err error) *protocol.Message {
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		return NewErrorMessageWithText(ge.Code, err.Error())
	}
	return NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error())
}
