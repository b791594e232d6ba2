package api

import (
	"net/http"

	"github.com/sii-nl/buscador/internal/core/search"
	"github.com/sii-nl/buscador/internal/shell/api/openapi"
)

const apiTitle = "API de búsqueda SII"

const apiDescription = `API de búsqueda para trámites de la Secretaria de Igualdad e Inclusión del gobierno de Nuevo León.

Tiene un único endpoint, **/buscar**

## Buscar

Puedes buscar usuarios que hayan sido acreedores o estén en proceso de un trámite de la secretaria.
Tiene 3 opciones de búsqueda:

* CURP
* Nombres
* Apellidos

Para seleccionar la opción de búsqueda, basta con mandar como parámetro en la url el método, es decir:

https://url/buscar?metodo=curp

Si no se selecciona ninguna opción, le hará query de todos los usuarios en la DB. Para no sobrecargar la respuesta,
los usuarios que regresa están paginados. Los parámetros usados en la paginación son:

* page
* page_size

También pueden ser agregados como parámetro en la url.`

// newDocs describes the search endpoint.
func newDocs(version string, mode ResponseMode, defaultPageSize int) *openapi.Generator {
	gen := openapi.NewGenerator(
		openapi.WithTitle(apiTitle),
		openapi.WithVersion(version),
		openapi.WithDescription(apiDescription),
		openapi.WithServer("/"),
	)

	methods := make([]any, 0, len(search.Methods))
	for _, m := range search.Methods {
		methods = append(methods, string(m))
	}

	ok := openapi.ResponseInfo{Description: "Query realizado con éxito", Schema: "SearchList", Model: searchListDoc{}}
	if mode == ModeSingle {
		ok = openapi.ResponseInfo{Description: "Query realizado con éxito", Schema: "SearchSingle", Model: searchSingleDoc{}}
	}
	errResp := func(desc string) openapi.ResponseInfo {
		return openapi.ResponseInfo{Description: desc, Schema: "Error", Model: ErrorResponse{}}
	}

	gen.RegisterEndpoint(openapi.EndpointInfo{
		Path:        "/buscar/",
		OperationID: "buscarRegistros",
		Summary:     "Buscar registros",
		Description: "Busca por CURP, nombres o apellidos. Sin método regresa todos los registros paginados.",
		Tag:         "Buscar",
		Params: []openapi.ParamInfo{
			{Name: ParamMethod, Description: "Método de búsqueda", Enum: methods},
			{Name: ParamValue, Description: "Valor a buscar, obligatorio cuando se proporciona 'metodo'"},
			{Name: ParamValue2, Description: "Apellido paterno; con metodo=apellidos, 'valor' es el apellido materno"},
			{Name: ParamPage, Type: "integer", Default: search.DefaultPage},
			{Name: ParamPageSize, Type: "integer", Default: defaultPageSize},
		},
		Responses: map[int]openapi.ResponseInfo{
			http.StatusOK:         ok,
			http.StatusBadRequest: errResp("Parámetros no válidos"),
			http.StatusNotFound:   errResp("Sin coincidencias"),
		},
	})
	return gen
}
