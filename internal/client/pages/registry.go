package pages

import "github.com/dmitrijs2005/authflow/internal/client/routepath"

// Routes builds one page per route.
func Routes(d *Deps) map[string]Page {
	return map[string]Page{
		routepath.Landing:       NewLanding(d),
		routepath.Login:         NewLogin(d),
		routepath.SignUp:        NewSignUp(d),
		routepath.Dashboard:     NewDashboard(d),
		routepath.EmailVerify:   NewEmailVerify(d),
		routepath.ResetPassword: NewResetPassword(d),
		routepath.Logout:        NewLogout(d),
	}
}
