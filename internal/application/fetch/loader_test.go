package fetch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockly-web/internal/application/fetch"
)

// gate producer controlable: cada invocación espera su propio canal.
type gate struct {
	calls   atomic.Int32
	release []chan result
}

type result struct {
	v   string
	err error
}

func newGate(n int) *gate {
	g := &gate{release: make([]chan result, n)}
	for i := range g.release {
		g.release[i] = make(chan result, 1)
	}
	return g
}

func (g *gate) producer(ctx context.Context) (string, error) {
	i := g.calls.Add(1) - 1
	r := <-g.release[i]
	return r.v, r.err
}

func waitSettled(t *testing.T, l interface{ Wait(context.Context) error }) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.Wait(ctx))
}

func TestLoader_TransicionExito(t *testing.T) {
	g := newGate(1)
	l := fetch.New(g.producer)

	l.Mount(context.Background())
	st := l.State()
	assert.True(t, st.Loading, "inmediatamente después de invocar debe estar cargando")
	assert.Nil(t, st.Data)
	assert.Empty(t, st.Err)

	g.release[0] <- result{v: "ok"}
	waitSettled(t, l)

	st = l.State()
	assert.False(t, st.Loading)
	require.NotNil(t, st.Data)
	assert.Equal(t, "ok", *st.Data)
	assert.Empty(t, st.Err)
}

func TestLoader_FalloConMensaje(t *testing.T) {
	l := fetch.New(func(ctx context.Context) (int, error) {
		return 0, errors.New("Produto não encontrado")
	})

	l.Mount(context.Background())
	waitSettled(t, l)

	st := l.State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Data, "un fallo limpia los datos")
	assert.Equal(t, "Produto não encontrado", st.Err)
}

func TestLoader_FalloSinMensajeUsaFallback(t *testing.T) {
	l := fetch.New(func(ctx context.Context) (int, error) {
		return 0, errors.New("")
	})
	l.Mount(context.Background())
	waitSettled(t, l)
	assert.Equal(t, fetch.DefaultErrorMessage, l.State().Err)
}

func TestLoader_PanicSinErrorUsaFallback(t *testing.T) {
	l := fetch.New(func(ctx context.Context) (int, error) {
		panic(42)
	}, fetch.WithFallbackMessage("falhou"))
	l.Mount(context.Background())
	waitSettled(t, l)
	assert.Equal(t, "falhou", l.State().Err)
}

func TestLoader_PanicConErrorUsaSuMensaje(t *testing.T) {
	l := fetch.New(func(ctx context.Context) (int, error) {
		panic(errors.New("boom"))
	})
	l.Mount(context.Background())
	waitSettled(t, l)
	assert.Equal(t, "boom", l.State().Err)
}

func TestLoader_RefreshRepiteTransicionYConservaDatos(t *testing.T) {
	g := newGate(2)
	l := fetch.New(g.producer)

	l.Mount(context.Background())
	g.release[0] <- result{v: "v1"}
	waitSettled(t, l)

	l.Refresh(context.Background())
	st := l.State()
	assert.True(t, st.Loading)
	require.NotNil(t, st.Data, "mientras recarga conserva los datos anteriores")
	assert.Equal(t, "v1", *st.Data)

	g.release[1] <- result{v: "v2"}
	waitSettled(t, l)
	assert.Equal(t, "v2", *l.State().Data)
	assert.Equal(t, int32(2), g.calls.Load())
}

func TestLoader_SetDepsSoloSiCambian(t *testing.T) {
	var calls atomic.Int32
	l := fetch.New(func(ctx context.Context) (int32, error) {
		return calls.Add(1), nil
	})

	l.Mount(context.Background(), "abc", 1)
	waitSettled(t, l)
	l.SetDeps(context.Background(), "abc", 1)
	waitSettled(t, l)
	assert.Equal(t, int32(1), calls.Load(), "mismas dependencias: no se vuelve a ejecutar")

	l.SetDeps(context.Background(), "abcd", 1)
	waitSettled(t, l)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoader_UltimaInvocacionGanaAunqueResuelvaAntes(t *testing.T) {
	g := newGate(2)
	l := fetch.New(g.producer)

	l.Mount(context.Background(), "a")
	l.SetDeps(context.Background(), "b")

	// la segunda responde primero; la primera llega tarde y debe descartarse
	g.release[1] <- result{v: "nuevo"}
	g.release[0] <- result{v: "viejo"}
	waitSettled(t, l)

	st := l.State()
	require.NotNil(t, st.Data)
	assert.Equal(t, "nuevo", *st.Data)
	assert.False(t, st.Loading)
}

func TestLoader_Subscribe(t *testing.T) {
	l := fetch.New(func(ctx context.Context) (string, error) { return "x", nil })

	var loadingSeen, dataSeen atomic.Bool
	l.Subscribe(func(s fetch.State[string]) {
		if s.Loading {
			loadingSeen.Store(true)
		}
		if s.Data != nil {
			dataSeen.Store(true)
		}
	})
	l.Mount(context.Background())
	waitSettled(t, l)

	assert.True(t, loadingSeen.Load())
	assert.True(t, dataSeen.Load())
}
