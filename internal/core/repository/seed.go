package repository

import (
	"context"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// SeedBooks loads the initial catalog into the repository. The catalog
// is fixed at process start; runtime traffic only ever touches the
// review maps.
func SeedBooks(ctx context.Context, books domain.BookRepository) error {
	seed := []domain.Book{
		{ISBN: "1", Author: "Chinua Achebe", Title: "Things Fall Apart"},
		{ISBN: "2", Author: "Hans Christian Andersen", Title: "Fairy tales"},
		{ISBN: "3", Author: "Dante Alighieri", Title: "The Divine Comedy"},
		{ISBN: "4", Author: "Unknown", Title: "The Epic Of Gilgamesh"},
		{ISBN: "5", Author: "Unknown", Title: "The Book Of Job"},
		{ISBN: "6", Author: "Unknown", Title: "One Thousand and One Nights"},
		{ISBN: "7", Author: "Unknown", Title: "Njál's Saga"},
		{ISBN: "8", Author: "Jane Austen", Title: "Pride and Prejudice"},
		{ISBN: "9", Author: "Honoré de Balzac", Title: "Le Père Goriot"},
		{ISBN: "10", Author: "Honoré de Balzac", Title: "Eugénie Grandet"},
	}

	for _, book := range seed {
		if err := books.Save(ctx, book); err != nil {
			return err
		}
	}
	return nil
}
