package imagepolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
)

func testTable() petDomain.DefaultImages {
	return petDomain.NewDefaultImages(map[string]string{
		"dog": "https://img.example/dog.png",
		"cat": "https://img.example/cat.png",
	})
}

func TestResolveDefault(t *testing.T) {
	table := testTable()
	first := ResolveDefault(table, petDomain.PetTypeDog)
	assert.Equal(t, "https://img.example/dog.png", first)
	assert.Equal(t, first, ResolveDefault(table, petDomain.PetTypeDog))

	assert.Empty(t, ResolveDefault(petDomain.DefaultImages{}, petDomain.PetTypeDog))
}

func TestClassify(t *testing.T) {
	table := testTable()

	assert.False(t, Classify(table, api.Record{ImageURL: "https://img.example/dog.png"}))
	assert.False(t, Classify(table, api.Record{ImageURL: "https://img.example/cat.png", Type: "Dog"}))
	assert.False(t, Classify(table, api.Record{}))
	assert.True(t, Classify(table, api.Record{ImageURL: "https://example.com/rex.jpg"}))
}

func TestClassify_ChangedTableMisclassifies(t *testing.T) {
	rec := api.Record{Type: "Dog", ImageURL: "https://img.example/dog.png"}
	assert.False(t, Classify(testTable(), rec))

	newer := petDomain.NewDefaultImages(map[string]string{"dog": "https://img.example/dog-v2.png", "cat": "https://img.example/cat.png"})
	assert.True(t, Classify(newer, rec))
}

func TestCreateForm_DefaultModeFollowsType(t *testing.T) {
	f := NewCreateForm(testTable(), petDomain.PetTypeDog)
	assert.Equal(t, ModeDefault, f.Mode())
	assert.Equal(t, "https://img.example/dog.png", f.Record().ImageURL)

	f.SetType(petDomain.PetTypeCat)
	assert.Equal(t, ModeDefault, f.Mode())
	assert.Equal(t, "https://img.example/cat.png", f.Record().ImageURL)

	in := f.Input()
	assert.Nil(t, in.ImageURL)
	assert.Equal(t, "Cat", in.Type)
}

func TestForm_CustomURLSurvivesTypeChange(t *testing.T) {
	f := NewCreateForm(testTable(), petDomain.PetTypeDog)
	f.SetImageURL("  https://example.com/rex.jpg ")
	assert.Equal(t, ModeCustom, f.Mode())

	f.SetType(petDomain.PetTypeCat)
	assert.Equal(t, "https://example.com/rex.jpg", f.Record().ImageURL)

	in := f.Input()
	require.NotNil(t, in.ImageURL)
	assert.Equal(t, "https://example.com/rex.jpg", *in.ImageURL)
}

func TestForm_ClearingURLRestoresDefault(t *testing.T) {
	f := NewCreateForm(testTable(), petDomain.PetTypeDog)
	f.SetImageURL("https://example.com/rex.jpg")
	f.SetType(petDomain.PetTypeCat)

	f.SetImageURL("")
	assert.Equal(t, ModeDefault, f.Mode())
	assert.Equal(t, "https://img.example/cat.png", f.Record().ImageURL)
	assert.Nil(t, f.Input().ImageURL)
}

func TestEditForm_ClassifiesAndDoesNotAliasRecord(t *testing.T) {
	table := testTable()
	stored := api.Record{ID: "p1", Type: "Dog", Breed: "Lab", ImageURL: "https://img.example/dog.png", Version: 3}

	f := EditForm(table, stored)
	assert.Equal(t, ModeDefault, f.Mode())
	assert.Equal(t, "p1", f.ID())

	f.SetType(petDomain.PetTypeCat)
	assert.Equal(t, "https://img.example/cat.png", f.Record().ImageURL)
	assert.Equal(t, "https://img.example/dog.png", stored.ImageURL)
	assert.Equal(t, "Dog", stored.Type)

	in := f.Input()
	assert.Equal(t, int64(3), in.Version)
	assert.Nil(t, in.ImageURL)

	custom := EditForm(table, api.Record{ID: "p2", Type: "Dog", ImageURL: "https://example.com/rex.jpg"})
	assert.Equal(t, ModeCustom, custom.Mode())
	custom.SetType(petDomain.PetTypeBird)
	assert.Equal(t, "https://example.com/rex.jpg", custom.Record().ImageURL)
}

func TestSetDetails(t *testing.T) {
	f := NewCreateForm(testTable(), petDomain.PetTypeRabbit)
	f.SetDetails(Details{
		Breed:          "Lop",
		Age:            1,
		Weight:         2.5,
		Gender:         petDomain.GenderFemale,
		Price:          1500,
		Status:         petDomain.StatusReserved,
		Description:    "calm",
		MedicalHistory: "vaccinated",
	})

	in := f.Input()
	attrs, err := in.Attributes()
	require.NoError(t, err)
	assert.Equal(t, petDomain.PetTypeRabbit, attrs.PetType)
	assert.Equal(t, "Lop", attrs.Breed)
	assert.Equal(t, petDomain.StatusReserved, attrs.Status)
	assert.Equal(t, "vaccinated", attrs.MedicalHistory)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "default", ModeDefault.String())
	assert.Equal(t, "custom", ModeCustom.String())
}
