// Package fetch implementa la primitiva de carga usada por las páginas: una única fuente
// asíncrona con estado {data, loading, error}, re-ejecutada cuando cambian sus dependencias
// o cuando se pide Refresh.
//
// Transiciones:
//
//	idle → loading → (éxito: Data, Loading=false) | (fallo: Err, Data=nil, Loading=false)
//
// No hay reintentos, deduplicación ni cancelación de peticiones superadas; todas terminan,
// pero sólo se aplica el resultado de la invocación iniciada más recientemente.
package fetch

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/jhoicas/stockly-web/pkg/logger"
)

// DefaultErrorMessage se usa cuando el fallo no trae un mensaje legible.
const DefaultErrorMessage = "Erro ao carregar dados"

// Producer fuente de datos sin argumentos.
type Producer[T any] func(ctx context.Context) (T, error)

// State instantánea del loader. Data nil equivale a "sin datos".
type State[T any] struct {
	Data    *T
	Loading bool
	Err     string
}

// Option personaliza un Loader.
type Option func(*options)

type options struct {
	fallback string
	log      *logger.Logger
	name     string
}

// WithFallbackMessage reemplaza DefaultErrorMessage.
func WithFallbackMessage(msg string) Option {
	return func(o *options) { o.fallback = msg }
}

// WithLogger registra resultados descartados y fallos.
func WithLogger(l *logger.Logger, name string) Option {
	return func(o *options) {
		o.log = l
		o.name = name
	}
}

// Loader equivalente Go del hook de carga. El valor cero no es usable; construir con New.
type Loader[T any] struct {
	producer Producer[T]
	opts     options

	mu      sync.Mutex
	state   State[T]
	deps    []any
	mounted bool
	seq     uint64
	subs    []func(State[T])

	pending int
	idle    chan struct{} // se cierra cuando pending vuelve a 0
}

// New construye un loader. Antes de montarse su estado es {Loading: true}.
func New[T any](producer Producer[T], opts ...Option) *Loader[T] {
	o := options{fallback: DefaultErrorMessage, log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[T]{
		producer: producer,
		opts:     o,
		state:    State[T]{Loading: true},
	}
}

// State devuelve una copia del estado actual.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Subscribe registra fn para cada cambio de estado. fn se llama fuera del lock.
func (l *Loader[T]) Subscribe(fn func(State[T])) {
	l.mu.Lock()
	l.subs = append(l.subs, fn)
	l.mu.Unlock()
}

// Mount primera ejecución con las dependencias dadas. Llamadas posteriores se comportan
// como SetDeps.
func (l *Loader[T]) Mount(ctx context.Context, deps ...any) {
	l.mu.Lock()
	if l.mounted {
		l.mu.Unlock()
		l.SetDeps(ctx, deps...)
		return
	}
	l.mounted = true
	l.deps = cloneDeps(deps)
	l.mu.Unlock()
	l.execute(ctx)
}

// SetDeps vuelve a ejecutar el producer sólo si alguna dependencia cambió.
func (l *Loader[T]) SetDeps(ctx context.Context, deps ...any) {
	l.mu.Lock()
	if !l.mounted {
		l.mu.Unlock()
		l.Mount(ctx, deps...)
		return
	}
	if reflect.DeepEqual(l.deps, deps) || (len(l.deps) == 0 && len(deps) == 0) {
		l.mu.Unlock()
		return
	}
	l.deps = cloneDeps(deps)
	l.mu.Unlock()
	l.execute(ctx)
}

// Refresh re-ejecuta el producer sin cambio de dependencias.
func (l *Loader[T]) Refresh(ctx context.Context) {
	l.mu.Lock()
	l.mounted = true
	l.mu.Unlock()
	l.execute(ctx)
}

// Wait bloquea hasta que no queden ejecuciones en vuelo o ctx termine.
func (l *Loader[T]) Wait(ctx context.Context) error {
	l.mu.Lock()
	if l.pending == 0 {
		l.mu.Unlock()
		return nil
	}
	idle := l.idle
	l.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader[T]) execute(ctx context.Context) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.state = State[T]{Data: l.state.Data, Loading: true}
	snapshot := l.state
	if l.pending == 0 {
		l.idle = make(chan struct{})
	}
	l.pending++
	l.mu.Unlock()
	l.notify(snapshot)

	go func() {
		data, err := l.run(ctx)
		l.settle(seq, data, err)
		l.done()
	}()
}

func (l *Loader[T]) done() {
	l.mu.Lock()
	l.pending--
	if l.pending == 0 {
		close(l.idle)
	}
	l.mu.Unlock()
}

// run invoca el producer convirtiendo un panic en fallo.
func (l *Loader[T]) run(ctx context.Context) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errors.New("")
		}
	}()
	return l.producer(ctx)
}

func (l *Loader[T]) settle(seq uint64, data T, err error) {
	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		l.opts.log.Debug().
			Str("loader", l.opts.name).
			Uint64("seq", seq).
			Msg("resultado obsoleto descartado")
		return
	}
	if err != nil {
		l.state = State[T]{Err: l.message(err)}
	} else {
		l.state = State[T]{Data: &data}
	}
	snapshot := l.state
	l.mu.Unlock()

	if err != nil {
		l.opts.log.Warn().Err(err).Str("loader", l.opts.name).Msg("carga fallida")
	}
	l.notify(snapshot)
}

func (l *Loader[T]) message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return l.opts.fallback
}

func (l *Loader[T]) notify(s State[T]) {
	l.mu.Lock()
	subs := make([]func(State[T]), len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}

func cloneDeps(deps []any) []any {
	if len(deps) == 0 {
		return nil
	}
	out := make([]any, len(deps))
	copy(out, deps)
	return out
}
