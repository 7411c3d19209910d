package sqlite

import "github.com/ezelectronics/ezelectronics/internal/service"

// Compile-time checks that Store satisfies every service store interface.
var (
	_ service.CartStore     = (*Store)(nil)
	_ service.CatalogReader = (*Store)(nil)
	_ service.ProductStore  = (*Store)(nil)
	_ service.UserStore     = (*Store)(nil)
	_ service.ReviewStore   = (*Store)(nil)
)
