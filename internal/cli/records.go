package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/imagepolicy"
)

func newListCommand(get func() *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pet records, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.sync.Start(cmd.Context()); err != nil {
				return err
			}
			printRecords(a.out, a.sync.Search(query), a.sync.DefaultImages())
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "match type, breed, status or description")
	return cmd
}

func printRecords(out io.Writer, records []api.Record, defaults petDomain.DefaultImages) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tBREED\tAGE\tWEIGHT\tGENDER\tPRICE\tSTATUS\tIMAGE")
	for _, r := range records {
		image := "default"
		if imagepolicy.Classify(defaults, r) {
			image = "custom"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s kg\t%s\tRs. %s\t%s\t%s\n",
			r.ID, r.Type, r.Breed, num(r.Age), num(r.Weight), r.Gender, num(r.Price), r.Status, image)
	}
	_ = w.Flush()
	fmt.Fprintf(out, "%d record(s)\n", len(records))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recordFlags are the editable fields shared by add and edit.
type recordFlags struct {
	petType        string
	breed          string
	age            float64
	weight         float64
	gender         string
	price          float64
	status         string
	image          string
	description    string
	medicalHistory string
}

func (f *recordFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.petType, "type", "", "Dog, Cat, Bird, Fish or Rabbit")
	fs.StringVar(&f.breed, "breed", "", "breed")
	fs.Float64Var(&f.age, "age", 0, "age in years")
	fs.Float64Var(&f.weight, "weight", 0, "weight in kg")
	fs.StringVar(&f.gender, "gender", "", "Male or Female")
	fs.Float64Var(&f.price, "price", 0, "price in rupees")
	fs.StringVar(&f.status, "status", "", "Available, Reserved or Sold")
	fs.StringVar(&f.image, "image", "", "custom image URL; empty uses the type's default")
	fs.StringVar(&f.description, "description", "", "free-text description")
	fs.StringVar(&f.medicalHistory, "medical-history", "", "medical history")
}

// apply copies every flag the operator set onto form, starting from its
// current values. The image is applied after the type so a type change in
// default mode picks up the new default first.
func (f *recordFlags) apply(cmd *cobra.Command, form *imagepolicy.Form) {
	changed := cmd.Flags().Changed
	cur := form.Record()
	d := imagepolicy.Details{
		Breed:          cur.Breed,
		Age:            cur.Age,
		Weight:         cur.Weight,
		Gender:         petDomain.Gender(cur.Gender),
		Price:          cur.Price,
		Status:         petDomain.Status(cur.Status),
		Description:    cur.Description,
		MedicalHistory: cur.MedicalHistory,
	}
	if changed("breed") {
		d.Breed = f.breed
	}
	if changed("age") {
		d.Age = f.age
	}
	if changed("weight") {
		d.Weight = f.weight
	}
	if changed("gender") {
		d.Gender = petDomain.Gender(f.gender)
	}
	if changed("price") {
		d.Price = f.price
	}
	if changed("status") {
		d.Status = petDomain.Status(f.status)
	}
	if changed("description") {
		d.Description = f.description
	}
	if changed("medical-history") {
		d.MedicalHistory = f.medicalHistory
	}
	form.SetDetails(d)

	if changed("type") {
		form.SetType(petDomain.PetType(f.petType))
	}
	if changed("image") {
		form.SetImageURL(f.image)
	}
}

func newAddCommand(get func() *app) *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pet record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.sync.Start(cmd.Context()); err != nil {
				return err
			}
			form := a.sync.NewForm(petDomain.PetType(flags.petType))
			flags.apply(cmd, form)
			return a.sync.Submit(cmd.Context(), form, false)
		},
	}
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("breed")
	return cmd
}

func newEditCommand(get func() *app) *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a pet record; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.sync.Start(cmd.Context()); err != nil {
				return err
			}
			form, err := a.sync.EditForm(args[0])
			if err != nil {
				return err
			}
			flags.apply(cmd, form)
			return a.sync.Submit(cmd.Context(), form, true)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newDeleteCommand(get func() *app) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pet record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id := args[0]
			if err := a.sync.Start(cmd.Context()); err != nil {
				return err
			}
			form, err := a.sync.EditForm(id)
			if err != nil {
				return err
			}

			// First gesture arms, second executes.
			if err := a.sync.ToggleDelete(cmd.Context(), id); err != nil {
				return err
			}
			if !confirm {
				rec := form.Record()
				fmt.Fprintf(a.out, "Delete %s %s (%s)? [y/N] ", rec.Type, rec.Breed, id)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if ans := strings.ToLower(strings.TrimSpace(answer)); ans != "y" && ans != "yes" {
					a.sync.CancelDelete()
					fmt.Fprintln(a.out, "Delete cancelled")
					return nil
				}
			}
			return a.sync.ToggleDelete(cmd.Context(), id)
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "skip the interactive confirmation")
	return cmd
}
