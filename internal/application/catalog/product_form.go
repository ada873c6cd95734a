package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// OpenCreate abre el modal vacío con los valores por defecto.
func (c *ListController) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form = Form{Open: true, Input: dto.NewProductFormInput(nil)}
}

// OpenEdit abre el modal con los datos del producto. Si no está en la lista actual se pide
// al servicio.
func (c *ListController) OpenEdit(ctx context.Context, id int64) error {
	p := c.findLoaded(id)
	if p == nil {
		fetched, err := c.repo.GetProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("catalog: obtener producto %d: %w", id, err)
		}
		p = fetched
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form = Form{
		Open:      true,
		Editing:   true,
		ProductID: p.ID,
		Input:     dto.NewProductFormInput(p),
	}
	return nil
}

// CloseForm descarta el modal sin enviar.
func (c *ListController) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form = Form{}
}

// SubmitForm valida y envía el modal. Devuelve *dto.FormError cuando el modal debe seguir
// abierto con un mensaje; en éxito lo cierra y vuelve a listar.
func (c *ListController) SubmitForm(ctx context.Context, in dto.ProductFormInput) error {
	c.mu.Lock()
	form := c.state.Form
	c.mu.Unlock()
	if !form.Open {
		return domain.ErrFormClosed
	}
	// Al editar, SKU y cantidad van deshabilitados y el navegador no los envía.
	if form.Editing {
		in.SKU = form.Input.SKU
		in.Quantity = form.Input.Quantity
	}

	if fe := in.Validate(form.Editing); fe != nil {
		c.setFormError(in, fe)
		return fe
	}

	var err error
	if form.Editing {
		_, err = c.repo.UpdateProduct(ctx, form.ProductID, in.ToUpdate())
	} else {
		_, err = c.repo.CreateProduct(ctx, in.ToCreate())
	}
	if err != nil {
		c.log.Warn().Err(err).Bool("editing", form.Editing).Int64("product_id", form.ProductID).Msg("guardar producto")
		fe := dto.FormErrorFrom(err, dto.MsgProductSaveFail)
		c.setFormError(in, fe)
		return fe
	}

	c.CloseForm()
	_ = c.Fetch(ctx)
	return nil
}

// Delete pide confirmación y borra. Sin confirmación no se hace ninguna petición.
func (c *ListController) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	if confirm == nil || !confirm(dto.MsgDeleteConfirm) {
		return domain.ErrNotConfirmed
	}
	if err := c.repo.DeleteProduct(ctx, id); err != nil {
		c.log.Error().Err(err).Int64("product_id", id).Msg("excluir producto")
		return fmt.Errorf("catalog: excluir producto %d: %w", id, err)
	}
	_ = c.Fetch(ctx)
	return nil
}

func (c *ListController) setFormError(in dto.ProductFormInput, fe *dto.FormError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form.Input = in
	c.state.Form.Err = fe
}

func (c *ListController) findLoaded(id int64) *entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Products {
		if c.state.Products[i].ID == id {
			p := c.state.Products[i]
			return &p
		}
	}
	return nil
}
