package app

import (
	"course_center_backend/docs"
	"course_center_backend/internal/middleware"
	"course_center_backend/internal/model"
	"course_center_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由，无需登录
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses/hot", c.course.Hot)
	}

	// 需要登录的路由
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(s.auth))
	{
		auth.POST("/logout", c.auth.Logout)
		auth.GET("/current", c.auth.Current)

		auth.GET("/users/search", middleware.RoleMiddleware(model.Admin), c.user.Search)
		auth.GET("/users/:id", c.user.Get)
		auth.PUT("/users/profile", c.user.UpdateProfile)
		auth.PUT("/users/:id/password", c.user.ChangePassword)
		auth.POST("/users/avatar", c.user.UploadAvatar)
		auth.DELETE("/users/:id", middleware.RoleMiddleware(model.Admin), c.user.Delete)

		// 课程
		auth.GET("/courses", c.course.List)
		auth.GET("/courses/mine", middleware.RoleMiddleware(model.Teacher), c.course.ListMine)
		auth.GET("/courses/:id", c.course.Get)
		auth.POST("/courses", middleware.RoleMiddleware(model.Teacher), c.course.Create)
		auth.PUT("/courses/:id/comment", middleware.RoleMiddleware(model.Teacher), c.course.EditComment)
		auth.DELETE("/courses/:id", middleware.RoleMiddleware(model.Teacher), c.course.Delete)
		auth.POST("/courses/:id/over", middleware.RoleMiddleware(model.Teacher), c.course.Over)
		auth.GET("/courses/:id/score/:studentId", c.course.FinalScore)
		auth.GET("/courses/:id/scores/:studentId", c.course.LessonScores)
		auth.GET("/courses/:id/lessons", c.lesson.ListByCourse)

		// 课时与发布
		auth.POST("/lessons", middleware.RoleMiddleware(model.Teacher), c.lesson.Add)
		auth.GET("/lessons/:id", c.lesson.Get)
		auth.DELETE("/lessons/:id", middleware.RoleMiddleware(model.Teacher), c.lesson.Delete)
		auth.GET("/lessons/:id/questions", c.lesson.Questions)
		auth.POST("/lessons/:id/questions", middleware.RoleMiddleware(model.Teacher), c.lesson.AddQuestions)
		auth.DELETE("/lessons/:id/questions/:questionId", middleware.RoleMiddleware(model.Teacher), c.lesson.RemoveQuestion)
		auth.POST("/lessons/:id/commit", middleware.RoleMiddleware(model.Teacher), c.lesson.Commit)
		auth.GET("/lessons/:id/score/:studentId", c.lesson.GetScore)
		auth.GET("/lessons/:id/scores", middleware.RoleMiddleware(model.Teacher), c.lesson.ListScores)

		// 题库
		auth.POST("/questions", middleware.RoleMiddleware(model.Teacher), c.question.Create)
		auth.GET("/questions/mine", middleware.RoleMiddleware(model.Teacher), c.question.ListMine)
		auth.GET("/questions/:id", middleware.RoleMiddleware(model.Teacher), c.question.Get)
		auth.PUT("/questions/:id", middleware.RoleMiddleware(model.Teacher), c.question.Update)
		auth.DELETE("/questions/:id", middleware.RoleMiddleware(model.Teacher), c.question.Delete)
		auth.GET("/questions/:id/lessons", middleware.RoleMiddleware(model.Teacher), c.question.Lessons)

		// 选课
		auth.GET("/enroll/courses", c.enroll.MyCourses)
		auth.GET("/enroll/stats", middleware.RoleMiddleware(model.Teacher), c.enroll.TeacherStats)
		auth.POST("/enroll/:courseId", middleware.RoleMiddleware(model.Student), c.enroll.Enroll)
		auth.GET("/enroll/:courseId/students", c.enroll.Students)
		auth.DELETE("/enroll/:courseId/:studentId", c.enroll.Dismiss)

		// 作答与判分
		auth.POST("/records/:lessonId", middleware.RoleMiddleware(model.Student), c.record.Submit)
		auth.GET("/records/:lessonId", middleware.RoleMiddleware(model.Teacher), c.record.LessonRecords)
		auth.GET("/records/:lessonId/:studentId", c.record.StudentRecords)
	}
}
