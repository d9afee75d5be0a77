package product

import "fmt"

// ListCachePattern matches every cached product list page of a company. Any
// write that changes a product's fields or stock must drop these keys.
func ListCachePattern(companyID string) string {
	return fmt.Sprintf("products:list:%s:*", companyID)
}
