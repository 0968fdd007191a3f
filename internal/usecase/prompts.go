package usecase

import (
	"fmt"
	"strings"

	"gradscout/internal/domain/model"
)

// Prompt construction lives here, next to the gateway, so the exact text sent
// to the provider is the same text written to the prompt history.

func jobSearchPrompt(q model.JobSearchQuery) string {
	return fmt.Sprintf(`You are an AI career assistant for new graduates. Your task is to find and list entry-level job opportunities based on a user's request.

User Request:
- Career Field: %s
- Location: %s

Based on this request, generate a list of 5 to 7 relevant job listings suitable for recent graduates.
For each job, provide a plausible title, company, location, and a brief description.
Crucially, for each listing, also provide a review of the job source (e.g., LinkedIn, Indeed, a specific company's career page). This review should include the source's name, a reliability rating from 1 to 5, and a brief summary explaining the rating.
All generated URLs should be placeholder links, like 'https://example.com/apply/job-id'.
Return the list in JSON format according to the provided schema.`, q.CareerField, q.Location)
}

func bannerPrompt(careerField string) string {
	return fmt.Sprintf("An abstract, professional, and inspiring digital art banner representing the career field of '%s'. The style should be modern and minimalist, with a tech-oriented feel. Use a color palette centered around dark gray, vibrant lime green, and clean white accents. The image should be abstract and conceptual, not literal.", careerField)
}

func availabilityPrompt(careerField string) string {
	return fmt.Sprintf(`For the career field of '%s', analyze the job market for new graduates in these specific countries: %s.

Your task is to provide a rating for the job opportunity availability in each country on a scale of 1 to 10, where 1 represents very low availability and 10 represents very high availability.

Also provide a concise, one-sentence summary explaining the reasoning behind each score.

Return the data as a JSON array according to the provided schema.`, careerField, strings.Join(model.AvailabilityCountries, ", "))
}

func summaryPrompt(jobs []model.JobListing) string {
	lines := make([]string, 0, len(jobs))
	for _, j := range jobs {
		lines = append(lines, fmt.Sprintf("- %s at %s", j.JobTitle, j.Company))
	}
	return fmt.Sprintf(`Concisely summarize the following job search results for a new graduate.
Start by stating the total number of jobs found.
Mention the main career field and location. Briefly mention the types of job sources that were found (e.g., "mostly on major job boards and some direct company sites").
Keep the summary under 50 words and adopt a friendly, encouraging tone.

List of Jobs Found:
%s`, strings.Join(lines, "\n"))
}

func speechPrompt(summary string) string {
	return "Say encouragingly: " + summary
}
