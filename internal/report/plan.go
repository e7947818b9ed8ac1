package report

// CoverSectionID marks the cover-page pseudo-section. It is part of the
// plan but excluded from outline numbering.
const CoverSectionID = "cover_page"

// DefaultPlan returns the standard internship-report outline used when a
// report is created without an AI-generated structure.
func DefaultPlan() Plan {
	return Plan{
		TotalMinPages: 10,
		TotalMaxPages: 20,
		Sections: []*Section{
			{
				ID:          CoverSectionID,
				Title:       "Cover page",
				Description: "Cover with the essentials: name, semester, internship dates, company name and location, tutor name.",
				Required:    true,
				Order:       1,
				MinPages:    1,
				MaxPages:    1,
				Status:      StatusNotStarted,
			},
			{
				ID:          "acknowledgments",
				Title:       "Acknowledgments",
				Description: "Thanks to the people who contributed to the internship: tutor, team, colleagues.",
				Required:    true,
				Order:       2,
				MinPages:    1,
				MaxPages:    1,
				Status:      StatusNotStarted,
			},
			{
				ID:          "table_of_contents",
				Title:       "Table of contents",
				Description: "Detailed outline of the report with numbering and pagination.",
				Required:    true,
				Order:       3,
				MinPages:    1,
				MaxPages:    2,
				Status:      StatusNotStarted,
			},
			{
				ID:          "introduction",
				Title:       "Introduction",
				Description: "Context of the internship, motivations, and announcement of the report outline.",
				Required:    true,
				Order:       4,
				MinPages:    1,
				MaxPages:    1,
				Status:      StatusNotStarted,
				Subsections: []*Section{
					{
						ID:          "intro_context",
						Title:       "Context and motivations",
						Description: "Why this internship, how it was found, initial expectations.",
						Required:    true,
						Order:       1,
						ParentID:    "introduction",
						Status:      StatusNotStarted,
					},
					{
						ID:          "intro_objectives",
						Title:       "Internship objectives",
						Description: "Personal and professional objectives.",
						Required:    true,
						Order:       2,
						ParentID:    "introduction",
						Status:      StatusNotStarted,
					},
					{
						ID:          "intro_plan",
						Title:       "Outline announcement",
						Description: "Brief presentation of the report structure.",
						Required:    true,
						Order:       3,
						ParentID:    "introduction",
						Status:      StatusNotStarted,
					},
				},
			},
			{
				ID:          "company_presentation",
				Title:       "Company presentation",
				Description: "Full description of the company: history, organization, sector, clients, key figures.",
				Required:    true,
				Order:       5,
				MinPages:    2,
				MaxPages:    4,
				Status:      StatusNotStarted,
				Subsections: []*Section{
					{
						ID:          "company_history",
						Title:       "History and identity",
						Description: "Founding date, founders, evolution, values and culture.",
						Required:    true,
						Order:       1,
						ParentID:    "company_presentation",
						Status:      StatusNotStarted,
					},
					{
						ID:          "company_sector",
						Title:       "Business sector",
						Description: "Field of activity, products or services, target market.",
						Required:    true,
						Order:       2,
						ParentID:    "company_presentation",
						Status:      StatusNotStarted,
					},
					{
						ID:          "company_organization",
						Title:       "Organization and structure",
						Description: "Org chart, departments, headcount, locations.",
						Required:    true,
						Order:       3,
						ParentID:    "company_presentation",
						Status:      StatusNotStarted,
					},
					{
						ID:          "company_market",
						Title:       "Economic environment",
						Description: "Main clients and suppliers, competitors, key figures.",
						Required:    true,
						Order:       4,
						ParentID:    "company_presentation",
						Status:      StatusNotStarted,
					},
				},
			},
			{
				ID:          "work_organization",
				Title:       "Work organization",
				Description: "How work and production are organized: schedules, safety, working conditions.",
				Required:    true,
				Order:       6,
				MinPages:    1,
				MaxPages:    2,
				Status:      StatusNotStarted,
				Subsections: []*Section{
					{
						ID:          "work_schedule",
						Title:       "Schedules and pace",
						Description: "Planning, hours, breaks, flexibility.",
						Required:    true,
						Order:       1,
						ParentID:    "work_organization",
						Status:      StatusNotStarted,
					},
					{
						ID:          "work_conditions",
						Title:       "Working conditions",
						Description: "Workspace, equipment, atmosphere.",
						Required:    true,
						Order:       2,
						ParentID:    "work_organization",
						Status:      StatusNotStarted,
					},
					{
						ID:          "work_safety",
						Title:       "Safety",
						Description: "Safety rules, protective equipment, training.",
						Required:    true,
						Order:       3,
						ParentID:    "work_organization",
						Status:      StatusNotStarted,
					},
				},
			},
			{
				ID:          "tasks_accomplished",
				Title:       "Tasks accomplished",
				Description: "Detailed description of the missions carried out during the internship.",
				Required:    true,
				Order:       7,
				MinPages:    3,
				MaxPages:    6,
				Status:      StatusNotStarted,
				Subsections: []*Section{
					{
						ID:          "tasks_main",
						Title:       "Main missions",
						Description: "The core assignments and their context.",
						Required:    true,
						Order:       1,
						ParentID:    "tasks_accomplished",
						Status:      StatusNotStarted,
					},
					{
						ID:          "tasks_secondary",
						Title:       "Secondary tasks",
						Description: "Side tasks and occasional contributions.",
						Required:    false,
						Order:       2,
						ParentID:    "tasks_accomplished",
						Status:      StatusNotStarted,
					},
					{
						ID:          "tasks_challenges",
						Title:       "Difficulties encountered",
						Description: "Problems met and how they were handled.",
						Required:    true,
						Order:       3,
						ParentID:    "tasks_accomplished",
						Status:      StatusNotStarted,
					},
					{
						ID:          "tasks_results",
						Title:       "Results obtained",
						Description: "Deliverables and measurable outcomes.",
						Required:    true,
						Order:       4,
						ParentID:    "tasks_accomplished",
						Status:      StatusNotStarted,
					},
				},
			},
			{
				ID:          "reflection",
				Title:       "Personal reflection",
				Description: "What the internship taught about the profession and about yourself.",
				Required:    true,
				Order:       8,
				MinPages:    1,
				MaxPages:    3,
				Status:      StatusNotStarted,
				Subsections: []*Section{
					{
						ID:          "reflection_human",
						Title:       "Human experience",
						Description: "Team integration, relationships, communication.",
						Required:    true,
						Order:       1,
						ParentID:    "reflection",
						Status:      StatusNotStarted,
					},
					{
						ID:          "reflection_engineer",
						Title:       "View of the profession",
						Description: "How the internship changed your view of the engineering profession.",
						Required:    true,
						Order:       2,
						ParentID:    "reflection",
						Status:      StatusNotStarted,
					},
					{
						ID:          "reflection_skills",
						Title:       "Skills developed",
						Description: "Technical and soft skills gained or reinforced.",
						Required:    true,
						Order:       3,
						ParentID:    "reflection",
						Status:      StatusNotStarted,
					},
				},
			},
			{
				ID:          "conclusion",
				Title:       "Conclusion",
				Description: "Summary of the internship and opening toward the future.",
				Required:    true,
				Order:       9,
				MinPages:    1,
				MaxPages:    1,
				Status:      StatusNotStarted,
				Subsections: []*Section{
					{
						ID:          "conclusion_summary",
						Title:       "Summary",
						Description: "Recap of the main points of the report.",
						Required:    true,
						Order:       1,
						ParentID:    "conclusion",
						Status:      StatusNotStarted,
					},
					{
						ID:          "conclusion_benefits",
						Title:       "Benefits of the internship",
						Description: "What the internship brought, personally and professionally.",
						Required:    true,
						Order:       2,
						ParentID:    "conclusion",
						Status:      StatusNotStarted,
					},
					{
						ID:          "conclusion_future",
						Title:       "Perspectives",
						Description: "Impact on study choices and career plans.",
						Required:    true,
						Order:       3,
						ParentID:    "conclusion",
						Status:      StatusNotStarted,
					},
				},
			},
			{
				ID:          "annexes",
				Title:       "Appendices",
				Description: "Supporting documents: organization charts, figures, glossary.",
				Required:    false,
				Order:       10,
				Status:      StatusNotStarted,
			},
		},
	}
}
