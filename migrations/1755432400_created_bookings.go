package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}
		experiences, err := app.FindCollectionByNameOrId("experiences")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("bookings")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "user",
				Required:     true,
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "experience",
				Required:     true,
				CollectionId: experiences.Id,
				MaxSelect:    1,
			},
			&core.TextField{Name: "first_name", Required: true},
			&core.TextField{Name: "last_name", Required: true},
			&core.EmailField{Name: "email", Required: true},
			&core.TextField{Name: "phone", Required: true},
			&core.DateField{Name: "date", Required: true},
			&core.TextField{Name: "time", Required: true},
			&core.NumberField{Name: "guests", Required: true, OnlyInt: true, Min: types.Pointer(1.0)},
			&core.NumberField{Name: "total_price", Min: types.Pointer(0.0)},
			&core.TextField{Name: "promo_code"},
			&core.NumberField{Name: "discount", Min: types.Pointer(0.0)},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"confirmed", "cancelled"},
			},
			&core.TextField{Name: "reference"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_bookings_user", false, "user", "")
		collection.AddIndex("idx_bookings_experience", false, "experience", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
