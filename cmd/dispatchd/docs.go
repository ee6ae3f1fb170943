package main

// General API documentation for swaggo. Regenerate docs with `swag init`.
//
// @title           dispatchd API
// @version         1.0
// @description     Queue and dispatch daemon fronting a prediction backend.
//
// @contact.name   dispatchd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
