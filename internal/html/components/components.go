package components

import (
	"fmt"
	"strings"
	"unicode"

	g "maragu.dev/gomponents"
	ghtmx "maragu.dev/gomponents-htmx"
	gh "maragu.dev/gomponents/html"

	mdb "github.com/liondandelion/larets/internal/db"
)

func Hyperscript(script string) g.Node {
	trimmed := strings.TrimLeftFunc(script, unicode.IsSpace)
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	return g.Attr("_", trimmed)
}

func Navbar(username string, isAuthenticated, isAdmin bool) g.Node {
	return gh.Header(
		gh.Nav(gh.Class("navbar"),
			gh.Ul(gh.Class("navbar-left-side"),
				gh.Li(gh.Class("navbar-item"),
					gh.A(gh.Class("button-like"), gh.Href("/"), g.Text("Larets")),
				),
			),
			gh.Ul(gh.Class("navbar-right-side"),
				g.If(isAuthenticated,
					g.Group{
						gh.Li(gh.Class("navbar-item"),
							gh.A(gh.Class("button-like"), gh.Href("/secret/new"), g.Text("New secret")),
						),
						gh.Li(gh.Class("navbar-item"),
							gh.A(gh.Class("button-like"), gh.Href("/user"), g.Text(username)),
						),
						g.If(isAdmin,
							gh.Li(gh.Class("navbar-item"),
								gh.A(gh.Class("button-like"), gh.Href("/userstable"), g.Text("Users")),
							),
						),
						gh.Li(gh.Class("navbar-item"),
							gh.A(gh.Class("button-like"), gh.Href("/logout"), g.Text("Logout")),
						),
					},
				),
				g.If(!isAuthenticated,
					g.Group{
						gh.Li(gh.Class("navbar-item"),
							gh.A(gh.Class("button-like"), gh.Href("/register"), g.Text("Register")),
						),
						gh.Li(gh.Class("navbar-item"),
							gh.A(gh.Class("button-like"), gh.Href("/login"), g.Text("Login")),
						),
					},
				),
			),
		),
	)
}

func SecretCard(s mdb.Secret) g.Node {
	year, month, day := s.CreatedAt.Date()
	hour, minute, _ := s.CreatedAt.Clock()

	divID := "secret-" + s.Name

	return gh.Article(gh.Class("secret-card"), gh.ID(divID),
		gh.H1(g.Text(s.Name)),
		gh.P(gh.Class("time"),
			g.Text(fmt.Sprintf(" %02d.", day)), g.Text(fmt.Sprintf("%02d.", month)), g.Text(fmt.Sprintf("%v", year)),
			g.Text(fmt.Sprintf(" %02d:", hour)), g.Text(fmt.Sprintf("%02d", minute)),
		),
		gh.Div(gh.Class("secret-card-controls"),
			gh.Button(g.Text("Show"),
				ghtmx.Trigger("click"), ghtmx.Get("/secret/"+s.Name), ghtmx.Target("#"+divID+"-payload"), ghtmx.Swap("outerHTML"),
			),
			gh.Button(g.Text("Delete"),
				ghtmx.Trigger("click"), ghtmx.Delete("/secret/"+s.Name),
			),
		),
		gh.Div(gh.ID(divID+"-payload")),
	)
}

func SecretCardList(secrets []mdb.Secret) g.Node {
	if len(secrets) == 0 {
		return gh.P(g.Text("The vault is empty. Add your first secret."))
	}
	return g.Map(secrets, SecretCard)
}
