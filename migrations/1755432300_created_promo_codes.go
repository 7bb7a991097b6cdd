package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("promo_codes")

		collection.Fields.Add(
			&core.TextField{Name: "code", Required: true},
			&core.SelectField{
				Name:      "discount_type",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"percentage", "fixed"},
			},
			&core.NumberField{Name: "discount_value", Required: true, Min: types.Pointer(0.0)},
			// 0 means unlimited uses.
			&core.NumberField{Name: "max_uses", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.NumberField{Name: "current_uses", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.DateField{Name: "expiry_date"},
			&core.BoolField{Name: "active"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_promo_codes_code", true, "code", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("promo_codes")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
