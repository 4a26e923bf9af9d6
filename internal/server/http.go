package server

import (
	"net/http"
	"time"

	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IfFaith/MemberLite/internal/conf"
	"github.com/IfFaith/MemberLite/internal/service"
)

// NewHTTPServer 创建 HTTP 服务器并挂载全部业务路由
func NewHTTPServer(
	c *conf.Bootstrap,
	memberSvc *service.MemberService,
	catalogSvc *service.CatalogService,
	employeeSvc *service.EmployeeService,
	ledgerSvc *service.LedgerService,
	reportSvc *service.ReportService,
	maintenanceSvc *service.MaintenanceService,
	authSvc *service.AuthService,
) *khttp.Server {
	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
		),
		khttp.Filter(authFilter(authSvc)),
	}
	if c.Server != nil && c.Server.HTTP != nil {
		if c.Server.HTTP.Network != "" {
			opts = append(opts, khttp.Network(c.Server.HTTP.Network))
		}
		if c.Server.HTTP.Addr != "" {
			opts = append(opts, khttp.Address(c.Server.HTTP.Addr))
		}
		if c.Server.HTTP.Timeout != "" {
			if d, err := time.ParseDuration(c.Server.HTTP.Timeout); err == nil {
				opts = append(opts, khttp.Timeout(d))
			}
		}
	}
	srv := khttp.NewServer(opts...)

	srv.Handle("/metrics", promhttp.Handler())
	srv.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	registerAuthRoutes(srv, authSvc)
	registerMemberRoutes(srv, memberSvc, ledgerSvc)
	registerCatalogRoutes(srv, catalogSvc)
	registerEmployeeRoutes(srv, employeeSvc)
	registerLedgerRoutes(srv, ledgerSvc)
	registerReportRoutes(srv, reportSvc)
	registerMaintenanceRoutes(srv, maintenanceSvc)

	return srv
}

func registerAuthRoutes(srv *khttp.Server, svc *service.AuthService) {
	r := srv.Route("/v1")

	r.POST("/auth/login", func(ctx khttp.Context) error {
		var req service.LoginRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := svc.Login(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/auth/password", func(ctx khttp.Context) error {
		var req service.ChangePasswordRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		if err := svc.ChangePassword(ctx, &req); err != nil {
			return err
		}
		return ctx.Result(200, map[string]bool{"success": true})
	})
}

func registerMemberRoutes(srv *khttp.Server, svc *service.MemberService, ledgerSvc *service.LedgerService) {
	r := srv.Route("/v1")

	r.POST("/members", func(ctx khttp.Context) error {
		var req service.CreateMemberRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := svc.CreateMember(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	// 列表与搜索共用一个路由，条件走查询参数
	r.GET("/members", func(ctx khttp.Context) error {
		query := ctx.Query()
		reply, err := svc.SearchMembers(ctx, &service.SearchMembersRequest{
			Name:   query.Get("name"),
			Phone:  query.Get("phone"),
			Level:  query.Get("level"),
			Status: query.Get("status"),
		})
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/members/phone/{phone}", func(ctx khttp.Context) error {
		reply, err := svc.GetMemberByPhone(ctx, ctx.Vars().Get("phone"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/members/{id}", func(ctx khttp.Context) error {
		reply, err := svc.GetMember(ctx, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.PUT("/members/{id}", func(ctx khttp.Context) error {
		var req service.UpdateMemberRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.MemberID = ctx.Vars().Get("id")
		reply, err := svc.UpdateMember(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.DELETE("/members/{id}", func(ctx khttp.Context) error {
		if err := svc.DeleteMember(ctx, ctx.Vars().Get("id")); err != nil {
			return err
		}
		return ctx.Result(200, map[string]bool{"success": true})
	})

	r.GET("/members/{id}/entries", func(ctx khttp.Context) error {
		reply, err := ledgerSvc.ListMemberEntries(ctx, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})
}

func registerCatalogRoutes(srv *khttp.Server, svc *service.CatalogService) {
	r := srv.Route("/v1")

	r.POST("/services", func(ctx khttp.Context) error {
		var req service.CreateServiceRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := svc.CreateService(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/services", func(ctx khttp.Context) error {
		reply, err := svc.ListServices(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/services/{id}", func(ctx khttp.Context) error {
		reply, err := svc.GetService(ctx, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.PUT("/services/{id}", func(ctx khttp.Context) error {
		var req service.UpdateServiceRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.ServiceID = ctx.Vars().Get("id")
		reply, err := svc.UpdateService(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.DELETE("/services/{id}", func(ctx khttp.Context) error {
		if err := svc.DeleteService(ctx, ctx.Vars().Get("id")); err != nil {
			return err
		}
		return ctx.Result(200, map[string]bool{"success": true})
	})
}

func registerEmployeeRoutes(srv *khttp.Server, svc *service.EmployeeService) {
	r := srv.Route("/v1")

	r.POST("/employees", func(ctx khttp.Context) error {
		var req service.CreateEmployeeRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := svc.CreateEmployee(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/employees", func(ctx khttp.Context) error {
		reply, err := svc.ListEmployees(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/employees/{id}", func(ctx khttp.Context) error {
		reply, err := svc.GetEmployee(ctx, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.PUT("/employees/{id}", func(ctx khttp.Context) error {
		var req service.UpdateEmployeeRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.EmployeeID = ctx.Vars().Get("id")
		reply, err := svc.UpdateEmployee(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.DELETE("/employees/{id}", func(ctx khttp.Context) error {
		if err := svc.DeleteEmployee(ctx, ctx.Vars().Get("id")); err != nil {
			return err
		}
		return ctx.Result(200, map[string]bool{"success": true})
	})

	r.GET("/employees/{id}/commissions", func(ctx khttp.Context) error {
		reply, err := svc.ListCommissions(ctx, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/employees/{id}/commissions", func(ctx khttp.Context) error {
		var req service.UpsertCommissionRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.EmployeeID = ctx.Vars().Get("id")
		if err := svc.UpsertCommission(ctx, &req); err != nil {
			return err
		}
		return ctx.Result(200, map[string]bool{"success": true})
	})

	r.DELETE("/employees/{id}/commissions/{serviceId}", func(ctx khttp.Context) error {
		if err := svc.DeleteCommission(ctx, ctx.Vars().Get("serviceId"), ctx.Vars().Get("id")); err != nil {
			return err
		}
		return ctx.Result(200, map[string]bool{"success": true})
	})
}

func registerLedgerRoutes(srv *khttp.Server, svc *service.LedgerService) {
	r := srv.Route("/v1")

	r.POST("/ledger/charge", func(ctx khttp.Context) error {
		var req service.ChargeRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := svc.Charge(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/ledger/recharge", func(ctx khttp.Context) error {
		var req service.RechargeRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := svc.Recharge(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/ledger/entries", func(ctx khttp.Context) error {
		query := ctx.Query()
		reply, err := svc.ListEntries(ctx, &service.ListEntriesRequest{
			MemberID:  query.Get("member_id"),
			Kind:      query.Get("kind"),
			StartDate: query.Get("start_date"),
			EndDate:   query.Get("end_date"),
		})
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})
}

func registerReportRoutes(srv *khttp.Server, svc *service.ReportService) {
	r := srv.Route("/v1")

	r.GET("/reports/statistics", func(ctx khttp.Context) error {
		query := ctx.Query()
		reply, err := svc.GetStatistics(ctx, &service.DateRangeRequest{
			StartDate: query.Get("start_date"),
			EndDate:   query.Get("end_date"),
		})
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/reports/commissions", func(ctx khttp.Context) error {
		query := ctx.Query()
		reply, err := svc.ListCommissions(ctx, &service.DateRangeRequest{
			StartDate: query.Get("start_date"),
			EndDate:   query.Get("end_date"),
		})
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})
}

func registerMaintenanceRoutes(srv *khttp.Server, svc *service.MaintenanceService) {
	r := srv.Route("/v1")

	r.POST("/maintenance/backup", func(ctx khttp.Context) error {
		reply, err := svc.Backup(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/maintenance/backups", func(ctx khttp.Context) error {
		reply, err := svc.ListBackups(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/maintenance/restore", func(ctx khttp.Context) error {
		var req service.RestoreRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := svc.Restore(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	// 删除目标走查询参数，DELETE 不带请求体
	r.DELETE("/maintenance/backups", func(ctx khttp.Context) error {
		req := &service.DeleteBackupRequest{FilePath: ctx.Query().Get("file_path")}
		if err := svc.DeleteBackup(ctx, req); err != nil {
			return err
		}
		return ctx.Result(200, map[string]bool{"success": true})
	})
}
