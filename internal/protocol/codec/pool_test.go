package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagePool_GetPut(t *testing.T) {
	t.Parallel()

	msg := GetMessage()
	assert.NotNil(t, msg)

	msg.Type = "test"
	msg.Payload = []byte("data")
	PutMessage(msg)

	// Get again - should be reset
	msg2 := GetMessage()
	assert.NotNil(t, msg2)
	assert.Empty(t, msg2.Type)
	assert.Nil(t, msg2.Payload)
}

func TestMessagePool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutMessage(nil)
		PutEnvelope(nil)
		PutBuffer(nil)
	})
}

func TestEnvelopePool_GetPut(t *testing.T) {
	t.Parallel()

	env := GetEnvelope()
	assert.NotNil(t, env)
	env.TypeUrl = TypeURLPrefix + "ping"
	env.Value = []byte("test")
	PutEnvelope(env)

	env2 := GetEnvelope()
	assert.Empty(t, env2.TypeUrl)
	assert.Empty(t, env2.Value)
}

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	assert.NotNil(t, buf)
	assert.Equal(t, 0, buf.Len())

	buf.WriteString("hello")
	PutBuffer(buf)

	buf2 := GetBuffer()
	assert.Equal(t, 0, buf2.Len())
}

func TestPools_Concurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			msg := GetMessage()
			msg.Type = "concurrent"
			PutMessage(msg)

			env := GetEnvelope()
			env.TypeUrl = "x"
			PutEnvelope(env)
		})
	}
	wg.Wait()
}
