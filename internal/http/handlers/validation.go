package handlers

import (
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateClient(c ClientRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	return errs
}

func validateCategory(c CategoryRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	return errs
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.SalePrice <= 0 {
		errs = append(errs, ValidationError{Field: "SalePrice", Description: "Sale price must be greater than zero"})
	}
	if p.CostPrice < 0 {
		errs = append(errs, ValidationError{Field: "CostPrice", Description: "Cost price cannot be negative"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if p.Threshold < 0 {
		errs = append(errs, ValidationError{Field: "Threshold", Description: "Threshold cannot be negative"})
	}
	if p.CategoryID <= 0 {
		errs = append(errs, ValidationError{Field: "CategoryID", Description: "Category is required"})
	}
	return errs
}

func validateCheckout(c CheckoutRequest) []ValidationError {
	errs := []ValidationError{}
	if c.ClientID <= 0 {
		errs = append(errs, ValidationError{Field: "ClientID", Description: "Client is required"})
	}
	if len(c.Items) == 0 {
		errs = append(errs, ValidationError{Field: "Items", Description: "At least one item is required"})
	}
	for _, item := range c.Items {
		if item.ProductID <= 0 {
			errs = append(errs, ValidationError{Field: "Items", Description: "Item product is required"})
			break
		}
	}
	for _, item := range c.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ValidationError{Field: "Items", Description: "Item quantity must be greater than zero"})
			break
		}
	}
	return errs
}

func validateNote(n NoteRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(n.Title) == "" {
		errs = append(errs, ValidationError{Field: "Title", Description: "Title is required"})
	}
	return errs
}

func validatePromo(p PromoRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, ValidationError{Field: "Title", Description: "Title is required"})
	}
	if p.Price < 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	return errs
}
