package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/protocol"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgType protocol.MessageType
		payload any
	}{
		{"nil payload", protocol.MsgPing, nil},
		{"ping", protocol.MsgPing, protocol.PingPayload{Timestamp: 12345}},
		{"play card", protocol.MsgPlayCard, protocol.PlayCardPayload{
			GameID: "g1",
			Card:   protocol.CardInfo{Color: "Red", Rank: "+2"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, err := NewMessage(tt.msgType, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.msgType, msg.Type)
			if tt.payload == nil {
				assert.Nil(t, msg.Payload)
				return
			}
			assert.NotEmpty(t, msg.Payload)
			assert.NotEqual(t, byte('\n'), msg.Payload[len(msg.Payload)-1])
		})
	}
}

func TestNewMessage_Unencodable(t *testing.T) {
	t.Parallel()

	_, err := NewMessage(protocol.MsgPing, make(chan int))
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewMessage(protocol.MsgPing, make(chan int)) })
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgChangeColor, protocol.ChangeColorPayload{GameID: "g1", Color: "Blue"})
	data, err := Encode(msg)
	require.NoError(t, err)

	var env anypb.Any
	require.NoError(t, proto.Unmarshal(data, &env))
	assert.Equal(t, TypeURLPrefix+"change_color", env.TypeUrl)

	decoded, err := Decode(data)
	require.NoError(t, err)
	defer PutMessage(decoded)
	assert.Equal(t, protocol.MsgChangeColor, decoded.Type)

	p, err := ParsePayload[protocol.ChangeColorPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "g1", p.GameID)
	assert.Equal(t, "Blue", p.Color)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)

	data, err := proto.Marshal(&anypb.Any{TypeUrl: "other/ping"})
	require.NoError(t, err)
	_, err = Decode(data)
	assert.Error(t, err)
}

func TestParsePayload_Empty(t *testing.T) {
	t.Parallel()

	p, err := ParsePayload[protocol.GameCommandPayload](&protocol.Message{Type: protocol.MsgDrawCard})
	require.NoError(t, err)
	assert.Empty(t, p.GameID)

	_, err = ParsePayload[protocol.GameCommandPayload](&protocol.Message{Payload: []byte("{bad")})
	assert.Error(t, err)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	parse := func(msg *protocol.Message) *protocol.ErrorPayload {
		require.Equal(t, protocol.MsgError, msg.Type)
		p, err := ParsePayload[protocol.ErrorPayload](msg)
		require.NoError(t, err)
		return p
	}

	p := parse(NewErrorMessage(protocol.ErrCodeRoomFull))
	assert.Equal(t, protocol.ErrCodeRoomFull, p.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeRoomFull], p.Message)

	p = parse(NewGameErrorMessage(apperrors.ErrNotYourTurn))
	assert.Equal(t, protocol.ErrCodeNotYourTurn, p.Code)

	p = parse(NewGameErrorMessage(fmt.Errorf("%w: Red 有 24 张", apperrors.ErrDeckColor)))
	assert.Equal(t, protocol.ErrCodeDeckIntegrity, p.Code)
	assert.Contains(t, p.Message, "Red 有 24 张")

	p = parse(NewGameErrorMessage(fmt.Errorf("boom")))
	assert.Equal(t, protocol.ErrCodeUnknown, p.Code)
	assert.Equal(t, "boom", p.Message)
}
