package cache

import "fmt"

// Key builders. The key layout is part of the wire contract with the
// deployed Redis instance, so these strings must stay stable.

const (
	// TTLDerived applies to every derived cache entry (catalog reads,
	// search results, recommendations, profiles, best sellers).
	TTLDerived = 3600 // seconds

	// TTLResetToken is the lifetime of a reset-token validity flag and the
	// maximum accepted token age.
	TTLResetToken = 86400 // seconds
)

func ProductKey(id int64) string   { return fmt.Sprintf("product:%d", id) }
func ProductsKey() string          { return "products" }
func SearchKey(query string) string { return "search_results:" + query }
func BestSellersKey() string       { return "best_sellers" }

func ProfileKey(email string) string        { return "user_profile:" + email }
func RecommendationsKey(email string) string { return "user:" + email + ":recommendations" }
func ViewedProductsKey(userID int64) string {
	return fmt.Sprintf("user:%d:viewed_products", userID)
}
func ResetTokenKey(token string) string { return "reset_token:" + token }
