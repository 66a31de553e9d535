package bookstore

import "context"

// Seed loads a small sample catalog: three authors, five books and two
// customers. Intended for local runs; gate it behind config.
func Seed(ctx context.Context, store Store) error {
	rowling, err := store.AddAuthor(ctx, Author{FirstName: "J.K.", LastName: "Rowling", Bio: "British author best known for the Harry Potter series"})
	if err != nil {
		return err
	}
	orwell, err := store.AddAuthor(ctx, Author{FirstName: "George", LastName: "Orwell", Bio: "English novelist and essayist, journalist and critic"})
	if err != nil {
		return err
	}
	lee, err := store.AddAuthor(ctx, Author{FirstName: "Harper", LastName: "Lee", Bio: "American novelist widely known for her novel To Kill a Mockingbird"})
	if err != nil {
		return err
	}

	books := []Book{
		{Title: "Harry Potter and the Philosopher's Stone", AuthorID: rowling.ID, ISBN: "9780747532743", PublicationYear: 1997, Price: 19.99, Stock: 50},
		{Title: "Harry Potter and the Chamber of Secrets", AuthorID: rowling.ID, ISBN: "9780747538486", PublicationYear: 1998, Price: 19.99, Stock: 40},
		{Title: "1984", AuthorID: orwell.ID, ISBN: "9780451524935", PublicationYear: 1949, Price: 14.99, Stock: 30},
		{Title: "Animal Farm", AuthorID: orwell.ID, ISBN: "9780451526342", PublicationYear: 1945, Price: 12.99, Stock: 25},
		{Title: "To Kill a Mockingbird", AuthorID: lee.ID, ISBN: "9780061120084", PublicationYear: 1960, Price: 15.99, Stock: 35},
	}
	for _, b := range books {
		if _, err := store.AddBook(ctx, b); err != nil {
			return err
		}
	}

	customers := []Customer{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Password: "password123"},
		{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Password: "password456"},
	}
	for _, c := range customers {
		if _, err := store.AddCustomer(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
