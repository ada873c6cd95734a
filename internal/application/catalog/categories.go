package catalog

import (
	"context"
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Categories sugerencias para el campo categoría, ordenadas según pt-BR (acentos y
// mayúsculas no alteran el orden alfabético).
func (c *ListController) Categories(ctx context.Context) ([]string, error) {
	cats, err := c.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: categorias: %w", err)
	}
	out := append([]string(nil), cats...)
	collate.New(language.BrazilianPortuguese, collate.IgnoreCase).SortStrings(out)
	return out, nil
}
