package main

// @title           Imaginify API
// @version         1.0
// @description     AI image transformation service with credit-based billing
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token
func main() {
	Execute()
}
