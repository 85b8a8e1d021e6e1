package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/reports/dto"
	sessionModel "supchaissac_backend/internals/features/sessions/model"
	helper "supchaissac_backend/internals/helpers"
)

// ReportController serves the staff reporting screens with grouped aggregates
// over the sessions table. Read-only.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// monthRange turns "2025-03" into [start, end) bounds.
func monthRange(month string) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, start.AddDate(0, 1, 0), true
}

func (ctrl *ReportController) scoped(c *fiber.Ctx) (*gorm.DB, error) {
	q := ctrl.DB.WithContext(c.Context()).Model(&sessionModel.SessionModel{})
	if month := c.Query("month"); month != "" {
		start, end, ok := monthRange(month)
		if !ok {
			return nil, helper.JsonError(c, fiber.StatusBadRequest, "Mois invalide (format attendu : AAAA-MM)")
		}
		q = q.Where("session_date >= ? AND session_date < ?", start, end)
	}
	return q, nil
}

// Summary returns global counts by status and by type. ?month=YYYY-MM scopes
// the window.
func (ctrl *ReportController) Summary(c *fiber.Ctx) error {
	base, err := ctrl.scoped(c)
	if err != nil {
		return err
	}

	var out dto.SummaryResponse
	if err := base.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul du rapport")
	}
	if err := base.Session(&gorm.Session{}).
		Select("session_status AS status, COUNT(*) AS count").
		Group("session_status").
		Order("session_status").
		Scan(&out.ByStatus).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul du rapport")
	}
	if err := base.Session(&gorm.Session{}).
		Select("session_type, COUNT(*) AS count").
		Group("session_type").
		Order("session_type").
		Scan(&out.ByType).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul du rapport")
	}
	return helper.JsonOK(c, "", out)
}

// Monthly returns per-month, per-type counts with paid/pending splits.
func (ctrl *ReportController) Monthly(c *fiber.Ctx) error {
	var rows []dto.MonthlyRow
	err := ctrl.DB.WithContext(c.Context()).
		Model(&sessionModel.SessionModel{}).
		Select(`to_char(session_date, 'YYYY-MM') AS month,
			session_type,
			COUNT(*) AS count,
			COUNT(*) FILTER (WHERE session_status = 'PAID') AS paid_count,
			COUNT(*) FILTER (WHERE session_status NOT IN ('PAID', 'REJECTED')) AS pending_count`).
		Group("to_char(session_date, 'YYYY-MM'), session_type").
		Order("month DESC, session_type").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul du rapport")
	}
	return helper.JsonOK(c, "", rows)
}

// ByTeacher returns per-teacher totals with the PACTE split the principal
// needs for the payment file. ?month=YYYY-MM scopes the window.
func (ctrl *ReportController) ByTeacher(c *fiber.Ctx) error {
	base, err := ctrl.scoped(c)
	if err != nil {
		return err
	}

	var rows []dto.TeacherRow
	err = base.
		Select(`session_teacher_id AS teacher_id,
			session_teacher_name AS teacher_name,
			session_in_pacte AS in_pacte,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE session_type = 'RCD') AS rcd,
			COUNT(*) FILTER (WHERE session_type = 'DEVOIRS_FAITS') AS devoirs_faits,
			COUNT(*) FILTER (WHERE session_type = 'HSE') AS hse,
			COUNT(*) FILTER (WHERE session_type = 'AUTRE') AS autre,
			COUNT(*) FILTER (WHERE session_status = 'PAID') AS paid`).
		Group("session_teacher_id, session_teacher_name, session_in_pacte").
		Order("session_teacher_name").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul du rapport")
	}
	return helper.JsonOK(c, "", rows)
}
