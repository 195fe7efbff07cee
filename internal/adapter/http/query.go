package http

import "github.com/labstack/echo/v4"

type page struct {
	Limit  int
	Offset int
}

func bindPage(c echo.Context) (page, error) {
	var p page
	err := echo.QueryParamsBinder(c).
		Int("limit", &p.Limit).
		Int("offset", &p.Offset).
		BindError()
	return p, err
}
