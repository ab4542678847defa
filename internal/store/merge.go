package store

import "github.com/skilltrack/tms-api/internal/models"

// Merge helpers implement the shallow-merge update law shared by every
// backend: only fields supplied in the patch overwrite, everything else is
// left untouched. Backends load the current record, apply the merge, and
// persist the result atomically.

func MergeUser(dst *models.User, p models.UserPatch) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Role != nil {
		dst.Role = *p.Role
	}
}

func MergeCourse(dst *models.Course, p models.CoursePatch) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Duration != nil {
		dst.Duration = *p.Duration
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.EnrollmentCount != nil {
		dst.EnrollmentCount = *p.EnrollmentCount
	}
}

func MergeTrainer(dst *models.Trainer, p models.TrainerPatch) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Expertise != nil {
		dst.Expertise = *p.Expertise
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
	if p.Bio != nil {
		dst.Bio = *p.Bio
	}
	if p.ActiveCourses != nil {
		dst.ActiveCourses = *p.ActiveCourses
	}
	if p.TotalTrainees != nil {
		dst.TotalTrainees = *p.TotalTrainees
	}
}

func MergeTrainee(dst *models.Trainee, p models.TraineePatch) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Gender != nil {
		dst.Gender = *p.Gender
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.Contact != nil {
		dst.Contact = *p.Contact
	}
	if p.CourseID != nil {
		dst.CourseID = *p.CourseID
	}
	if p.Course != nil {
		dst.Course = *p.Course
	}
	if p.TrainerID != nil {
		dst.TrainerID = p.TrainerID
	}
	if p.Trainer != nil {
		dst.Trainer = *p.Trainer
	}
	if p.EnrollmentDate != nil {
		dst.EnrollmentDate = *p.EnrollmentDate
	}
	if p.CompletionDate != nil {
		dst.CompletionDate = p.CompletionDate
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Payment != nil {
		dst.Payment = *p.Payment
	}
}

func MergePayment(dst *models.Payment, p models.PaymentPatch) {
	if p.PaymentMethod != nil {
		dst.PaymentMethod = *p.PaymentMethod
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Amount != nil {
		dst.Amount = *p.Amount
	}
}

func MergeAssessment(dst *models.Assessment, p models.AssessmentPatch) {
	if p.AssessmentType != nil {
		dst.AssessmentType = *p.AssessmentType
	}
	if p.Score != nil {
		dst.Score = *p.Score
	}
	if p.MaxScore != nil {
		dst.MaxScore = *p.MaxScore
	}
	if p.Result != nil {
		dst.Result = *p.Result
	}
	if p.Feedback != nil {
		dst.Feedback = *p.Feedback
	}
	if p.AssessedBy != nil {
		dst.AssessedBy = *p.AssessedBy
	}
	if p.AssessmentDate != nil {
		dst.AssessmentDate = *p.AssessmentDate
	}
}

func MergeTrainingResult(dst *models.TrainingResult, p models.TrainingResultPatch) {
	if p.Competencies != nil {
		dst.Competencies = *p.Competencies
	}
	if p.OverallRating != nil {
		dst.OverallRating = *p.OverallRating
	}
	if p.IssuedDate != nil {
		dst.IssuedDate = p.IssuedDate
	}
	if p.Remarks != nil {
		dst.Remarks = *p.Remarks
	}
	if p.ApprovedBy != nil {
		dst.ApprovedBy = *p.ApprovedBy
	}
}
