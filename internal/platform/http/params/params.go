// Package params binds path and query parameters with the OpenAPI "simple"/"form" styles.
package params

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PathID binds a required positive integer path parameter.
func PathID(c *gin.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("parameter %q must be positive", name)
	}
	return id, nil
}

// QueryInt binds an optional integer query parameter, returning def when absent.
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	v := def
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &v); err != nil {
		return 0, err
	}
	return v, nil
}
