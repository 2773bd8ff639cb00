// file: internals/helpers/json_response.go
package helper

import (
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   JSON responses (success envelopes)
=================================*/

// JsonList: collection envelope {data, meta}
func JsonList(c *fiber.Ctx, data any, meta Meta) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": emptyIfNil(data),
		"meta": meta,
	})
}

// JsonListEx: collection envelope plus extra top-level keys (filters, summary)
func JsonListEx(c *fiber.Ctx, data any, meta Meta, extra fiber.Map) error {
	body := fiber.Map{
		"data": emptyIfNil(data),
		"meta": meta,
	}
	for k, v := range extra {
		if k == "data" || k == "meta" {
			continue
		}
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// JsonOK: single resource / computed object
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": emptyIfNil(data),
	})
}

// JsonCreated: POST success (201)
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(withMessage(fiber.Map{"data": data}, message))
}

// JsonUpdated: PUT/PATCH success
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(withMessage(fiber.Map{"data": data}, message))
}

// JsonMessage: body with only a message (delete, logout, unenroll)
func JsonMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func withMessage(body fiber.Map, message string) fiber.Map {
	if m := strings.TrimSpace(message); m != "" {
		body["message"] = m
	}
	return body
}

// nil slices are rendered as [] rather than null
func emptyIfNil(v any) any {
	if v == nil {
		return []any{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return []any{}
	}
	return v
}
