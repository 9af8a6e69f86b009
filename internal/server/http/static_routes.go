package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type view string

const (
	viewDesktop view = "web"
	viewMobile  view = "mobile"

	viewCookie    = "grape_view"
	viewCookieAge = 30 * 24 * 60 * 60
)

// 挂载前缀
func (v view) prefix() string {
	if v == viewMobile {
		return "/web_mobile/"
	}
	return "/web/"
}

// RegisterStaticRoutes 桌面版挂在 /web/，手机版挂在 /web_mobile/；
// 访问 / 时按 ?view=、cookie、User-Agent 的顺序决定跳到哪个
func RegisterStaticRoutes(r chi.Router, desktopDir, mobileDir string) {
	if r == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	for v, dir := range map[view]string{viewDesktop: desktopDir, viewMobile: mobileDir} {
		prefix := v.prefix()
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
		r.Get(strings.TrimSuffix(prefix, "/"), redirectTo(prefix))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		v := chooseView(r)
		if override, ok := parseView(r.URL.Query().Get("view")); ok {
			http.SetCookie(w, &http.Cookie{
				Name:     viewCookie,
				Value:    string(override),
				Path:     "/",
				MaxAge:   viewCookieAge,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set("Vary", "User-Agent, Cookie")
		http.Redirect(w, r, v.prefix(), http.StatusFound)
	})
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func chooseView(r *http.Request) view {
	if v, ok := parseView(r.URL.Query().Get("view")); ok {
		return v
	}
	if c, err := r.Cookie(viewCookie); err == nil {
		if v, ok := parseView(c.Value); ok {
			return v
		}
	}
	if looksMobile(r.UserAgent()) {
		return viewMobile
	}
	return viewDesktop
}

func parseView(s string) (view, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "web", "desktop", "pc":
		return viewDesktop, true
	case "mobile", "m", "phone", "web_mobile":
		return viewMobile, true
	}
	return "", false
}

var mobileAgents = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone", "harmony"}

func looksMobile(ua string) bool {
	ua = strings.ToLower(ua)
	for _, needle := range mobileAgents {
		if strings.Contains(ua, needle) {
			return true
		}
	}
	return false
}
