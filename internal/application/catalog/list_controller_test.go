package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockly-web/internal/application/catalog"
	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// fakeProductRepo repositorio en memoria que registra las llamadas.
type fakeProductRepo struct {
	mu       sync.Mutex
	products []entity.Product
	queries  []dto.ProductQuery
	created  []dto.ProductCreate
	updated  map[int64]dto.ProductUpdate
	deleted  []int64
	gets     int
	cats     []string
	listErr  error
	saveErr  error
}

func newFakeRepo(products ...entity.Product) *fakeProductRepo {
	return &fakeProductRepo{products: products, updated: map[int64]dto.ProductUpdate{}}
}

func (f *fakeProductRepo) ListProducts(_ context.Context, q dto.ProductQuery) (*entity.ProductPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.listErr != nil {
		return nil, f.listErr
	}
	data := append([]entity.Product(nil), f.products...)
	return &entity.ProductPage{Data: data, Total: len(data), Page: 1, Pages: 1}, nil
}

func (f *fakeProductRepo) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, in dto.ProductCreate) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.created = append(f.created, in)
	p := entity.Product{ID: int64(len(f.products) + 1), Name: in.Name, SKU: in.SKU, Category: in.Category}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, id int64, in dto.ProductUpdate) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.updated[id] = in
	return &entity.Product{ID: id}, nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProductRepo) ListCategories(context.Context) ([]string, error) {
	return f.cats, nil
}

func (f *fakeProductRepo) listCalls() []dto.ProductQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.ProductQuery(nil), f.queries...)
}

// detailErr error con detail del servicio.
type detailErr struct{ detail string }

func (e detailErr) Error() string                 { return "service error" }
func (e detailErr) ServiceDetail() (string, bool) { return e.detail, e.detail != "" }

func cafe() entity.Product {
	return entity.Product{
		ID: 1, Name: "Café", SKU: "CAF01", Category: "Bebidas",
		Price: decimal.RequireFromString("12.5"), Quantity: 3, MinStock: 5, IsLowStock: true,
	}
}

func waitIdle(t *testing.T, c *catalog.ListController) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.WaitIdle(ctx))
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestListController_EstadoInicialCargando(t *testing.T) {
	c := catalog.NewListController(newFakeRepo())
	defer c.Close()
	assert.True(t, c.State().Loading)
	assert.Empty(t, c.State().Products)
}

func TestListController_DebounceSoloConsultaUltimoTermino(t *testing.T) {
	repo := newFakeRepo(cafe())
	c := catalog.NewListController(repo, catalog.WithDebounce(50*time.Millisecond))
	defer c.Close()

	c.Mount("")
	c.SetSearch("abc")
	time.Sleep(10 * time.Millisecond)
	c.SetSearch("abcd")
	waitIdle(t, c)

	calls := repo.listCalls()
	require.Len(t, calls, 1, "una sola petición para la ráfaga")
	assert.Equal(t, "abcd", calls[0].Search)
	assert.Equal(t, 100, calls[0].Limit)

	st := c.State()
	assert.False(t, st.Loading)
	require.Len(t, st.Products, 1)
	assert.Equal(t, 1, st.Total)
}

func TestListController_FalloConservaEstadoAnterior(t *testing.T) {
	repo := newFakeRepo(cafe())
	var logs bytes.Buffer
	c := catalog.NewListController(repo,
		catalog.WithDebounce(time.Millisecond),
		catalog.WithLogger(logger.FromWriter(&logs, "info")),
	)
	defer c.Close()

	require.NoError(t, c.Fetch(context.Background()))
	repo.listErr = errors.New("connection refused")

	err := c.Fetch(context.Background())
	require.Error(t, err)

	st := c.State()
	assert.False(t, st.Loading)
	require.Len(t, st.Products, 1, "el fallo no limpia la lista")
	assert.Equal(t, "Café", st.Products[0].Name)

	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), `"message":"Erro ao carregar produtos"`)
	assert.Contains(t, logs.String(), `"error":"connection refused"`)
}

func TestListController_CloseCancelaBusquedaPendiente(t *testing.T) {
	repo := newFakeRepo()
	c := catalog.NewListController(repo, catalog.WithDebounce(time.Hour))

	c.SetSearch("x")
	c.Close()
	waitIdle(t, c)

	assert.Empty(t, repo.listCalls())
	c.SetSearch("y")
	waitIdle(t, c)
	assert.Empty(t, repo.listCalls(), "tras Close no se programan búsquedas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Formulario y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitForm_ValidacionSinPeticion(t *testing.T) {
	repo := newFakeRepo()
	c := catalog.NewListController(repo)
	defer c.Close()

	c.OpenCreate()
	assert.Equal(t, dto.DefaultMinStock, c.State().Form.Input.MinStock)

	err := c.SubmitForm(context.Background(), dto.ProductFormInput{Name: "Teclado"})
	var fe *dto.FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, dto.MsgProductRequired, fe.Message)

	st := c.State()
	assert.True(t, st.Form.Open)
	assert.Equal(t, "Teclado", st.Form.Input.Name, "el modal conserva lo escrito")
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.listCalls())
}

func TestSubmitForm_CrearCierraYRelista(t *testing.T) {
	repo := newFakeRepo()
	c := catalog.NewListController(repo)
	defer c.Close()

	c.OpenCreate()
	err := c.SubmitForm(context.Background(), dto.ProductFormInput{
		Name: "Teclado", SKU: "TEC-001", Category: "Periféricos",
		Price: decimal.RequireFromString("299.90"), MinStock: 5,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Len(t, repo.listCalls(), 1, "refetch completo tras la mutación")

	st := c.State()
	assert.False(t, st.Form.Open)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "TEC-001", st.Products[0].SKU)
}

func TestSubmitForm_DetailDelServicio(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = detailErr{detail: "SKU já cadastrado"}
	c := catalog.NewListController(repo)
	defer c.Close()

	c.OpenCreate()
	err := c.SubmitForm(context.Background(), dto.ProductFormInput{Name: "A", SKU: "B", Category: "C"})
	require.Error(t, err)
	assert.Equal(t, "SKU já cadastrado", c.State().Form.Err.Message)

	repo.saveErr = errors.New("dial tcp: refused")
	_ = c.SubmitForm(context.Background(), dto.ProductFormInput{Name: "A", SKU: "B", Category: "C"})
	assert.Equal(t, dto.MsgProductSaveFail, c.State().Form.Err.Message)
	assert.Empty(t, repo.listCalls())
}

func TestSubmitForm_EditarNoEnviaSKU(t *testing.T) {
	repo := newFakeRepo(cafe())
	c := catalog.NewListController(repo)
	defer c.Close()
	require.NoError(t, c.Fetch(context.Background()))

	require.NoError(t, c.OpenEdit(context.Background(), 1))
	assert.Zero(t, repo.gets, "el producto ya estaba en la lista")

	form := c.State().Form
	assert.True(t, form.Editing)
	assert.Equal(t, "CAF01", form.Input.SKU)

	in := form.Input
	in.SKU = ""
	in.Name = "Café especial"
	require.NoError(t, c.SubmitForm(context.Background(), in))

	upd, ok := repo.updated[1]
	require.True(t, ok)
	assert.Equal(t, "Café especial", *upd.Name)
}

func TestSubmitForm_EditarConErrorConservaSKUyCantidad(t *testing.T) {
	repo := newFakeRepo(cafe())
	c := catalog.NewListController(repo)
	defer c.Close()
	require.NoError(t, c.OpenEdit(context.Background(), 1))

	// campos deshabilitados: el navegador no envía sku ni quantity
	err := c.SubmitForm(context.Background(), dto.ProductFormInput{Category: "Bebidas"})
	var fe *dto.FormError
	require.ErrorAs(t, err, &fe)

	form := c.State().Form
	assert.True(t, form.Open)
	assert.Equal(t, "CAF01", form.Input.SKU)
	assert.Equal(t, 3, form.Input.Quantity)
	assert.Empty(t, repo.updated)
}

func TestOpenEdit_FueraDeListaPideAlServicio(t *testing.T) {
	repo := newFakeRepo(cafe())
	c := catalog.NewListController(repo)
	defer c.Close()

	require.NoError(t, c.OpenEdit(context.Background(), 1))
	assert.Equal(t, 1, repo.gets)

	err := c.OpenEdit(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitForm_SinModalAbierto(t *testing.T) {
	c := catalog.NewListController(newFakeRepo())
	defer c.Close()
	err := c.SubmitForm(context.Background(), dto.ProductFormInput{})
	assert.ErrorIs(t, err, domain.ErrFormClosed)
}

func TestDelete_SinConfirmarNoHacePeticion(t *testing.T) {
	repo := newFakeRepo(cafe())
	c := catalog.NewListController(repo)
	defer c.Close()

	var asked string
	err := c.Delete(context.Background(), 1, func(msg string) bool {
		asked = msg
		return false
	})
	assert.ErrorIs(t, err, domain.ErrNotConfirmed)
	assert.Equal(t, "Excluir este produto?", asked)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, repo.listCalls())
}

func TestDelete_ConfirmadoBorraYRelista(t *testing.T) {
	repo := newFakeRepo(cafe())
	c := catalog.NewListController(repo)
	defer c.Close()

	require.NoError(t, c.Delete(context.Background(), 1, func(string) bool { return true }))
	assert.Equal(t, []int64{1}, repo.deleted)
	assert.Len(t, repo.listCalls(), 1)
}

func TestCategories_OrdenPtBR(t *testing.T) {
	repo := newFakeRepo()
	repo.cats = []string{"Periféricos", "bebidas", "Áudio", "Limpeza"}
	c := catalog.NewListController(repo)
	defer c.Close()

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Áudio", "bebidas", "Limpeza", "Periféricos"}, cats)
}
