package dashboard

type StatsResponse struct {
	TotalTrainings    int64 `json:"total_trainings"`
	TotalApplicants   int64 `json:"total_applicants"`
	PendingApplicants int64 `json:"pending_applicants"`
	UpcomingTrainings int64 `json:"upcoming_trainings"`
}
