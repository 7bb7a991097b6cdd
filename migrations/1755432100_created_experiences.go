package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("experiences")

		collection.Fields.Add(
			&core.TextField{Name: "title", Required: true},
			&core.TextField{Name: "description", Required: true},
			&core.URLField{Name: "image"},
			&core.TextField{Name: "location", Required: true},
			&core.NumberField{Name: "price", Required: true, Min: types.Pointer(0.0)},
			&core.NumberField{Name: "rating", Min: types.Pointer(0.0), Max: types.Pointer(5.0)},
			&core.NumberField{Name: "reviews", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.JSONField{Name: "amenities"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("experiences")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
