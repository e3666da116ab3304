package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/config"
	"github.com/yukikurage/org-management-api/internal/constants"
	"github.com/yukikurage/org-management-api/internal/database"
	"github.com/yukikurage/org-management-api/internal/handlers"
	"github.com/yukikurage/org-management-api/internal/middleware"
	"github.com/yukikurage/org-management-api/internal/repository"
	"github.com/yukikurage/org-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	assignRepo := repository.NewAssignmentRepository(db)
	permRepo := repository.NewPermissionRepository(db)

	// Audit trail
	recorder := audit.NewRecorder(db)

	// Services
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo, memberRepo, recorder)
	deptService := services.NewDepartmentService(deptRepo, orgRepo, recorder)
	roleService := services.NewRoleService(roleRepo, deptRepo, orgRepo, recorder)
	groupService := services.NewGroupService(groupRepo, memberRepo, orgRepo, recorder)
	memberService := services.NewMemberService(memberRepo, orgRepo, groupRepo, assignRepo, roleRepo, deptRepo, recorder)
	assignmentService := services.NewAssignmentService(assignRepo, roleRepo, memberRepo, recorder)
	permissionService := services.NewPermissionService(permRepo, memberRepo, roleRepo, groupRepo, deptRepo, assignRepo, recorder)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService, cfg.DefaultLocale)
	deptHandler := handlers.NewDepartmentHandler(deptService, cfg.DefaultLocale)
	roleHandler := handlers.NewRoleHandler(roleService, assignmentService, cfg.DefaultLocale)
	groupHandler := handlers.NewGroupHandler(groupService, cfg.DefaultLocale)
	memberHandler := handlers.NewMemberHandler(memberService, assignmentService, permissionService, cfg.DefaultLocale)
	permHandler := handlers.NewPermissionHandler(permissionService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Organization Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.GET("/:id", middleware.RequireOrganizationAccess(), orgHandler.GetOrganization)
			orgs.PUT("/:id", middleware.RequireOrganizationAccess(), orgHandler.UpdateOrganization)
			orgs.GET("/:id/ancestors", middleware.RequireOrganizationAccess(), orgHandler.GetOrganizationAncestors)
			orgs.GET("/:id/descendants", middleware.RequireOrganizationAccess(), orgHandler.GetOrganizationDescendants)

			orgs.POST("/:id/departments", middleware.RequireOrganizationAccess(), deptHandler.CreateDepartment)
			orgs.GET("/:id/departments", middleware.RequireOrganizationAccess(), deptHandler.ListDepartments)

			orgs.POST("/:id/roles", middleware.RequireOrganizationAccess(), roleHandler.CreateRole)
			orgs.GET("/:id/roles", middleware.RequireOrganizationAccess(), roleHandler.ListRoles)

			orgs.POST("/:id/groups", middleware.RequireOrganizationAccess(), groupHandler.CreateGroup)
			orgs.GET("/:id/groups", middleware.RequireOrganizationAccess(), groupHandler.ListGroups)

			orgs.POST("/:id/members", middleware.RequireOrganizationAccess(), memberHandler.CreateMember)
			orgs.GET("/:id/members", middleware.RequireOrganizationAccess(), memberHandler.ListMembers)

			orgs.POST("/:id/permissions", middleware.RequireOrganizationAccess(), permHandler.GrantPermission)
		}

		// Department routes (protected)
		depts := api.Group("/departments")
		depts.Use(middleware.RequireAuth())
		{
			depts.GET("/:id", deptHandler.GetDepartment)
			depts.PUT("/:id", deptHandler.UpdateDepartment)
			depts.DELETE("/:id", deptHandler.DeleteDepartment)
		}

		// Role routes (protected)
		roles := api.Group("/roles")
		roles.Use(middleware.RequireAuth())
		{
			roles.GET("/:id", roleHandler.GetRole)
			roles.PUT("/:id", roleHandler.UpdateRole)
			roles.GET("/:id/ancestors", roleHandler.GetRoleAncestors)
			roles.GET("/:id/descendants", roleHandler.GetRoleDescendants)
			roles.POST("/:id/assign", roleHandler.AssignRole)
			roles.POST("/:id/unassign", roleHandler.UnassignRole)
			roles.GET("/:id/assignee", roleHandler.GetActiveAssignee)
			roles.GET("/:id/assignments", roleHandler.ListRoleAssignments)
		}

		// Group routes (protected)
		groups := api.Group("/groups")
		groups.Use(middleware.RequireAuth())
		{
			groups.GET("/:id", groupHandler.GetGroup)
			groups.PUT("/:id", groupHandler.UpdateGroup)
			groups.DELETE("/:id", groupHandler.DeleteGroup)
			groups.GET("/:id/members", groupHandler.ListGroupMembers)
			groups.POST("/:id/members", groupHandler.AddGroupMember)
			groups.DELETE("/:id/members/:memberId", groupHandler.RemoveGroupMember)
		}

		// Member routes (protected)
		members := api.Group("/members")
		members.Use(middleware.RequireAuth())
		{
			members.GET("/:id", memberHandler.GetMember)
			members.PUT("/:id", memberHandler.UpdateMember)
			members.GET("/:id/groups", memberHandler.ListMemberGroups)
			members.GET("/:id/departments", memberHandler.ListMemberDepartments)
			members.GET("/:id/assignments", memberHandler.ListMemberAssignments)
			members.GET("/:id/effective-permissions", memberHandler.GetEffectivePermissions)
			members.GET("/:id/check-permission", memberHandler.CheckPermission)
		}

		// Permission routes (protected)
		perms := api.Group("/permissions")
		perms.Use(middleware.RequireAuth())
		{
			perms.GET("", permHandler.ListPermissions)
			perms.DELETE("", permHandler.RevokePermission)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
