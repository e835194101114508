// Package docs holds the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/categories": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Add a new top-level category",
				"parameters": [
					{
						"description": "Category name",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CategoryRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/categories/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Fetch a category and all of its descendants",
				"parameters": [
					{
						"type": "string",
						"description": "Category UUID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Add a subcategory under an existing category",
				"parameters": [
					{
						"type": "string",
						"description": "Parent category UUID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Subcategory name",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CategoryRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Rename a category",
				"parameters": [
					{
						"type": "string",
						"description": "Category UUID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "New name",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CategoryRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Delete a category with all of its subcategories",
				"parameters": [
					{
						"type": "string",
						"description": "Category UUID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"description": "Products of deleted categories are kept without a category."
			}
		},
		"/products": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"products"
				],
				"summary": "Search products",
				"parameters": [
					{
						"type": "string",
						"description": "Category name contains",
						"name": "categoryName",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Product name contains",
						"name": "productName",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Attribute key contains",
						"name": "attributeKey",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"description": "Every supplied filter is a case-insensitive substring match; filters are combined with AND."
			}
		},
		"/products/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"products"
				],
				"summary": "Add a product to a category",
				"parameters": [
					{
						"type": "string",
						"description": "Category UUID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Product",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ProductRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"products"
				],
				"summary": "Update name, description and price of a product",
				"parameters": [
					{
						"type": "string",
						"description": "Product UUID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Product",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ProductRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"products"
				],
				"summary": "Delete a product and its attributes",
				"parameters": [
					{
						"type": "string",
						"description": "Product UUID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				}
			}
		},
		"/products/{id}/attributes": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"attributes"
				],
				"summary": "Add an attribute to a product",
				"parameters": [
					{
						"type": "string",
						"description": "Product UUID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Attribute",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.AttributeRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/products/{id}/attributes/{attribute_id}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"attributes"
				],
				"summary": "Update an attribute of a product",
				"parameters": [
					{
						"type": "string",
						"description": "Product UUID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Attribute UUID",
						"name": "attribute_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Attribute",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.AttributeRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"attributes"
				],
				"summary": "Delete an attribute of a product",
				"parameters": [
					{
						"type": "string",
						"description": "Product UUID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Attribute UUID",
						"name": "attribute_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Envelope"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.Envelope": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"status": {
					"type": "integer"
				},
				"message": {
					"type": "string"
				},
				"details": {}
			}
		},
		"dto.CategoryRequest": {
			"type": "object",
			"required": [
				"name"
			],
			"properties": {
				"name": {
					"type": "string",
					"maxLength": 255,
					"minLength": 3,
					"example": "electronics"
				}
			}
		},
		"dto.ProductRequest": {
			"type": "object",
			"required": [
				"name",
				"price"
			],
			"properties": {
				"name": {
					"type": "string",
					"maxLength": 255,
					"minLength": 3,
					"example": "iphone16"
				},
				"description": {
					"type": "string",
					"minLength": 3,
					"example": "latest apple phone"
				},
				"price": {
					"type": "number",
					"maximum": 99999999.99,
					"minimum": 1,
					"example": 999
				}
			}
		},
		"dto.AttributeRequest": {
			"type": "object",
			"required": [
				"key",
				"value"
			],
			"properties": {
				"key": {
					"type": "string",
					"maxLength": 255,
					"minLength": 3,
					"example": "color"
				},
				"value": {
					"type": "string",
					"maxLength": 255,
					"minLength": 3,
					"example": "black"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Catalog Management API",
	Description:	  "Hierarchical categories, products and product attributes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
