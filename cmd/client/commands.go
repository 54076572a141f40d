package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/service/screen"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/service/session"
)

var errUnknownCommand = errors.New("unknown command")

type app struct {
	deps     screen.Deps
	sessions *session.Manager
	term     *terminal
	out      io.Writer
}

func newApp(deps screen.Deps, sessions *session.Manager, t *terminal) *app {
	return &app{deps: deps, sessions: sessions, term: t, out: t.out}
}

const usage = `usage: client [-server URL] <command> [flags]

commands:
  register            -name -email [-password]
  login               -user-id -token [-admin]
  logout
  restaurants         [-q query]
  restaurant-create   -name -location -description
  restaurant-delete   -id
  reserve             -restaurant -date DD/MM/YYYY -time HH:MM -persons N [-user]
  users
  reservations        [-filter query]
  reservation-delete  -id [-yes]
  reservation-edit    -id [-date] [-time] [-persons]
  profile             [-name] [-email]
`

func (a *app) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return screen.NewLogout(a.deps).Run(ctx)
	case "restaurants":
		return a.restaurants(ctx, args)
	case "restaurant-create":
		return a.restaurantCreate(ctx, args)
	case "restaurant-delete":
		return a.restaurantDelete(ctx, args)
	case "reserve":
		return a.reserve(ctx, args)
	case "users":
		return a.users(ctx)
	case "reservations":
		return a.reservations(ctx, args)
	case "reservation-delete":
		return a.reservationDelete(ctx, args)
	case "reservation-edit":
		return a.reservationEdit(ctx, args)
	case "profile":
		return a.profile(ctx, args)
	case "", "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	name := fs.String("name", "", "ユーザー名")
	email := fs.String("email", "", "メールアドレス")
	password := fs.String("password", "", "パスワード。省略した場合は入力を求めます")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		p, err := a.term.readPassword("Password: ")
		if err != nil {
			return err
		}
		*password = p
	}

	r := screen.NewRegistration(a.deps)
	r.Form = model.Registration{Name: *name, Email: *email, Password: *password}
	if err := r.Submit(ctx); err != nil {
		fmt.Fprintln(a.out, r.ErrorMessage)
		return err
	}
	return nil
}

// login は外部のログイン処理で得たセッションを端末に保存します
func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	userID := fs.String("user-id", "", "ユーザーID")
	token := fs.String("token", "", "認証トークン")
	admin := fs.Bool("admin", false, "管理者として保存する")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := model.Session{UserID: *userID, AuthToken: *token, IsAdmin: *admin}
	if err := a.sessions.Establish(ctx, s); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as user %s\n", s.UserID)
	return nil
}

func (a *app) restaurants(ctx context.Context, args []string) error {
	fs := a.flagSet("restaurants")
	query := fs.String("q", "", "検索文字列")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d := screen.NewRestaurantDirectory(a.deps)
	if err := d.Mount(ctx); err != nil {
		return err
	}
	if *query != "" {
		if err := d.Search(ctx, *query); err != nil {
			return err
		}
	}
	printRestaurants(a.out, d.Restaurants())
	return nil
}

func (a *app) restaurantCreate(ctx context.Context, args []string) error {
	fs := a.flagSet("restaurant-create")
	name := fs.String("name", "", "店名")
	location := fs.String("location", "", "所在地")
	description := fs.String("description", "", "説明")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d := screen.NewRestaurantDirectory(a.deps)
	d.NewRestaurant = model.RestaurantInput{Name: *name, Location: *location, Description: *description}
	if err := d.Create(ctx); err != nil {
		return err
	}
	printRestaurants(a.out, d.Restaurants())
	return nil
}

func (a *app) restaurantDelete(ctx context.Context, args []string) error {
	fs := a.flagSet("restaurant-delete")
	id := fs.String("id", "", "レストランID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return screen.NewRestaurantDirectory(a.deps).Delete(ctx, model.ID(*id))
}

func (a *app) reserve(ctx context.Context, args []string) error {
	fs := a.flagSet("reserve")
	restaurantID := fs.String("restaurant", "", "レストランID")
	date := fs.String("date", "", "日付 (DD/MM/YYYY)")
	at := fs.String("time", "", "時刻 (HH:MM)")
	persons := fs.String("persons", "", "人数")
	userID := fs.String("user", "", "予約するユーザーID（管理者のみ）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := screen.NewReservationComposer(a.deps)
	c.Form = screen.ReservationForm{
		UserID:       model.ID(*userID),
		RestaurantID: model.ID(*restaurantID),
		Date:         *date,
		Time:         *at,
		Persons:      *persons,
	}
	return c.Submit(ctx)
}

// users は管理者が代理予約で選べるユーザーを表示します
func (a *app) users(ctx context.Context) error {
	c := screen.NewReservationComposer(a.deps)
	if err := c.Mount(ctx); err != nil {
		return err
	}
	if !a.sessions.Current().IsAdmin {
		return screen.ErrAdminOnly
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, u := range c.Users() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.UserID, u.Name, u.Email)
	}
	return w.Flush()
}

func (a *app) reservations(ctx context.Context, args []string) error {
	fs := a.flagSet("reservations")
	filter := fs.String("filter", "", "名前・レストラン名・日付で絞り込む（管理者のみ）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l := screen.NewReservationList(a.deps)
	if err := l.Mount(ctx); err != nil {
		return err
	}
	if *filter != "" {
		if err := l.Filter(*filter); err != nil {
			return err
		}
	}
	a.printReservations(l)
	return nil
}

func (a *app) reservationDelete(ctx context.Context, args []string) error {
	fs := a.flagSet("reservation-delete")
	id := fs.String("id", "", "予約ID")
	yes := fs.Bool("yes", false, "確認せずに削除する")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.term.assumeYes = *yes

	l := screen.NewReservationList(a.deps)
	if err := l.Mount(ctx); err != nil {
		return err
	}
	deleted, err := l.Delete(ctx, model.ID(*id))
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(a.out, "Canceled")
		return nil
	}
	a.printReservations(l)
	return nil
}

// reservationEdit は一覧から編集画面に遷移し、指定された項目だけを変更して送信します
func (a *app) reservationEdit(ctx context.Context, args []string) error {
	fs := a.flagSet("reservation-edit")
	id := fs.String("id", "", "予約ID")
	date := fs.String("date", "", "日付")
	at := fs.String("time", "", "時刻")
	persons := fs.String("persons", "", "人数")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l := screen.NewReservationList(a.deps)
	if err := l.Mount(ctx); err != nil {
		return err
	}
	if err := l.Edit(model.ID(*id)); err != nil {
		return err
	}

	e := screen.NewReservationEditor(a.deps)
	if err := e.Load(ctx, a.term.editID); err != nil {
		return err
	}
	if *date != "" {
		e.Form.Date = *date
	}
	if *at != "" {
		e.Form.Time = *at
	}
	if *persons != "" {
		e.Form.PeopleCount = *persons
	}
	return e.Submit(ctx)
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := a.flagSet("profile")
	name := fs.String("name", "", "新しいユーザー名")
	email := fs.String("email", "", "新しいメールアドレス")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := screen.NewProfileSettings(a.deps)
	if err := p.Load(ctx); err != nil {
		return err
	}
	if *name != "" || *email != "" {
		if *name != "" {
			p.Form.Name = *name
		}
		if *email != "" {
			p.Form.Email = *email
		}
		if err := p.Submit(ctx); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", p.Form.Name, p.Form.Email)
	return nil
}

func printRestaurants(out io.Writer, restaurants []model.Restaurant) {
	if len(restaurants) == 0 {
		fmt.Fprintln(out, "No restaurants found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tDESCRIPTION")
	for _, r := range restaurants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.RestaurantID, r.Name, r.Location, r.Description)
	}
	w.Flush()
}

func (a *app) printReservations(l *screen.ReservationList) {
	reservations := l.Reservations()
	if len(reservations) == 0 {
		fmt.Fprintln(a.out, "No reservations found.")
		return
	}

	admin := a.sessions.Current().IsAdmin
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	header := []string{"ID", "DATE", "TIME", "PEOPLE", "RESTAURANT"}
	if admin {
		header = append(header, "NAME")
	}
	fmt.Fprintln(w, strings.Join(append(header, "STATUS"), "\t"))
	for _, r := range reservations {
		restaurant := r.RestaurantName
		if restaurant == "" {
			restaurant = r.RestaurantID.String()
		}
		row := []string{r.ReservationID.String(), r.LocalizedDate(), r.Time, fmt.Sprint(r.PeopleCount), restaurant}
		if admin {
			row = append(row, r.Name)
		}
		status := "upcoming"
		if l.IsPast(r) {
			status = "past"
		}
		fmt.Fprintln(w, strings.Join(append(row, status), "\t"))
	}
	w.Flush()
}
