package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		experiences, err := app.FindCollectionByNameOrId("experiences")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("slots")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "experience",
				Required:      true,
				CollectionId:  experiences.Id,
				MaxSelect:     1,
				CascadeDelete: true,
			},
			&core.DateField{Name: "date", Required: true},
			&core.TextField{Name: "time", Required: true},
			&core.NumberField{Name: "available", Required: true, OnlyInt: true, Min: types.Pointer(0.0)},
			&core.NumberField{Name: "booked", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// Slot identity must be unambiguous: one slot per experience+date+time.
		collection.AddIndex("idx_slots_experience_date_time", true, "experience, date, time", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("slots")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
