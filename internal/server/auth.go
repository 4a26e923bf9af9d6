package server

import (
	"encoding/json"
	"net/http"
	"strings"

	khttp "github.com/go-kratos/kratos/v2/transport/http"

	ledgerErrors "github.com/IfFaith/MemberLite/internal/errors"
	"github.com/IfFaith/MemberLite/internal/service"
)

// publicPaths 不需要令牌的路径
var publicPaths = map[string]bool{
	"/v1/auth/login": true,
	"/metrics":       true,
	"/healthz":       true,
}

// authFilter 登录鉴权过滤器
// 除白名单外的请求必须携带 Authorization: Bearer <token>
func authFilter(authSvc *service.AuthService) khttp.FilterFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			token := strings.TrimPrefix(auth, "Bearer ")
			if auth == "" || token == auth {
				writeUnauthorized(w)
				return
			}
			if err := authSvc.VerifyToken(token); err != nil {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	e := ledgerErrors.ErrUnauthorized()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    e.Code,
		"reason":  e.Reason,
		"message": e.Message,
	})
}
