// Package docs registers the OpenAPI description of the HTTP API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/areas": {
            "get": {
                "summary": "List areas",
                "responses": {
                    "200": {
                        "description": "areas"
                    }
                }
            }
        },
        "/houses/index": {
            "get": {
                "summary": "Home page houses",
                "responses": {
                    "200": {
                        "description": "top houses by bookings"
                    }
                }
            }
        },
        "/houses": {
            "get": {
                "summary": "Search houses",
                "parameters": [
                    {
                        "name": "aid",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "sd",
                        "in": "query",
                        "type": "string",
                        "format": "date"
                    },
                    {
                        "name": "ed",
                        "in": "query",
                        "type": "string",
                        "format": "date"
                    },
                    {
                        "name": "sk",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "new",
                            "booking",
                            "price-inc",
                            "price-des"
                        ]
                    },
                    {
                        "name": "p",
                        "in": "query",
                        "type": "integer",
                        "minimum": 1
                    }
                ],
                "responses": {
                    "200": {
                        "description": "one page of houses"
                    },
                    "400": {
                        "description": "invalid filter"
                    }
                }
            },
            "post": {
                "summary": "Publish a house",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PublishHouseRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created"
                    },
                    "400": {
                        "description": "invalid input"
                    }
                }
            }
        },
        "/houses/{id}": {
            "get": {
                "summary": "House detail",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "detail and viewer id"
                    },
                    "404": {
                        "description": "not found"
                    }
                }
            }
        },
        "/houses/{id}/images": {
            "post": {
                "summary": "Upload a house image",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "house_image",
                        "in": "formData",
                        "required": true,
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "image url"
                    },
                    "403": {
                        "description": "not the owner"
                    }
                }
            }
        },
        "/user/houses": {
            "get": {
                "summary": "Houses of the caller",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "houses"
                    }
                }
            }
        },
        "/orders": {
            "post": {
                "summary": "Book a house",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "order id"
                    },
                    "409": {
                        "description": "dates already booked"
                    }
                }
            }
        },
        "/user/orders": {
            "get": {
                "summary": "Orders of the caller",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "renter",
                            "landlord"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "orders"
                    }
                }
            }
        },
        "/orders/{id}/status": {
            "put": {
                "summary": "Accept or reject an order",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TransitionOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "updated"
                    },
                    "403": {
                        "description": "invalid operation"
                    }
                }
            }
        },
        "/orders/{id}/comment": {
            "put": {
                "summary": "Review a stay",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CommentOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "completed"
                    },
                    "403": {
                        "description": "invalid operation"
                    }
                }
            }
        }
    },
    "definitions": {
        "CreateOrderRequest": {
            "type": "object",
            "required": [
                "houseId",
                "startDate",
                "endDate"
            ],
            "properties": {
                "houseId": {
                    "type": "integer"
                },
                "startDate": {
                    "type": "string",
                    "format": "date"
                },
                "endDate": {
                    "type": "string",
                    "format": "date"
                }
            }
        },
        "TransitionOrderRequest": {
            "type": "object",
            "required": [
                "action"
            ],
            "properties": {
                "action": {
                    "type": "string",
                    "enum": [
                        "accept",
                        "reject"
                    ]
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "CommentOrderRequest": {
            "type": "object",
            "properties": {
                "comment": {
                    "type": "string"
                }
            }
        },
        "PublishHouseRequest": {
            "type": "object",
            "required": [
                "title",
                "price",
                "areaId",
                "address",
                "roomCount",
                "acreage",
                "unit",
                "capacity",
                "beds",
                "deposit",
                "minDays",
                "maxDays"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "price": {
                    "type": "number"
                },
                "areaId": {
                    "type": "integer"
                },
                "address": {
                    "type": "string"
                },
                "roomCount": {
                    "type": "integer"
                },
                "acreage": {
                    "type": "integer"
                },
                "unit": {
                    "type": "string"
                },
                "capacity": {
                    "type": "integer"
                },
                "beds": {
                    "type": "string"
                },
                "deposit": {
                    "type": "number"
                },
                "minDays": {
                    "type": "integer"
                },
                "maxDays": {
                    "type": "integer"
                },
                "facilities": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            }
        }
    },
    "host": "{{.Host}}"
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1.0",
	Schemes:          []string{},
	Title:            "roomrent booking API",
	Description:      "Room rental listings, availability search and the order lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
