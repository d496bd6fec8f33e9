package profile

import "fmt"

// Schema v1: the richer document variant, with projects and
// action/impact refined components.

// ArchetypeThresholds drives the seniority classification in the
// extraction prompt. Values are years of experience.
type ArchetypeThresholds struct {
	SeniorYears int // below this: Individual Contributor
	ExecYears   int // below this: Technical Leader, otherwise Executive
}

const extractionSchema = `{
  "basics": {
    "name": "Full Name",
    "email": "email@example.com",
    "phone": "phone number or null",
    "location": "City, State/Country or null",
    "linkedin": "LinkedIn URL or null",
    "github": "GitHub URL or null",
    "website": "Personal website or null",
    "summary": "Professional summary - if not explicitly stated, create a 2-3 sentence summary based on the resume content"
  },
  "work_experience": [
    {
      "company": "Company Name",
      "role": "Job Title",
      "dates": "Start Date - End Date (e.g., Jan 2020 - Present)",
      "location": "City, State or Remote",
      "accomplishments": [
        {
          "raw_text": "The exact bullet point text from the resume",
          "refined_components": {
            "action": "What was done",
            "impact": "Measurable result if mentioned, otherwise null"
          },
          "tags": ["relevant", "keywords", "technologies"]
        }
      ]
    }
  ],
  "education": [
    {
      "institution": "University/School Name",
      "degree": "Degree Type (BS, MS, PhD, etc.)",
      "field": "Field of Study/Major",
      "dates": "Graduation Year or Date Range",
      "gpa": "GPA if mentioned, otherwise null",
      "highlights": ["honors", "relevant coursework", "activities"]
    }
  ],
  "skills": {
    "languages": ["Programming languages"],
    "frameworks": ["Frameworks and libraries"],
    "tools": ["Tools, platforms, databases"],
    "cloud": ["Cloud services and infrastructure"],
    "other": ["Other skills, methodologies, soft skills"]
  },
  "certifications": [
    {
      "name": "Certification Name",
      "issuer": "Issuing Organization",
      "date": "Date obtained or null"
    }
  ],
  "projects": [
    {
      "name": "Project Name",
      "description": "Brief description",
      "technologies": ["tech", "used"],
      "url": "Project URL if mentioned"
    }
  ],
  "meta": {
    "years_experience": 0,
    "core_archetype": "Individual Contributor or Technical Leader or Executive",
    "primary_domain": "e.g., Backend, Frontend, ML, DevOps, etc."
  }
}`

// extractionSystemPrompt builds the fixed schema-describing instruction.
// Thresholds are injected so they can be tuned via configuration.
func extractionSystemPrompt(t ArchetypeThresholds) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract ALL information from the resume text into structured JSON.

CRITICAL: You must capture EVERY work experience, EVERY bullet point, EVERY skill mentioned. Do not summarize or skip anything.

Return ONLY valid JSON with this exact structure:

%s

RULES:
1. Extract EVERY bullet point from work experience - do not skip or combine them
2. Preserve the original text of accomplishments in raw_text
3. Calculate years_experience by summing up all work experience durations
4. Choose core_archetype from years_experience: under %d years is "Individual Contributor", %d to %d years is "Technical Leader", over %d years is "Executive"
5. For skills, categorize them appropriately - don't leave any out
6. If a section is not present in the resume, use empty array [] or null
7. For accomplishments tags, extract 2-4 relevant keywords/technologies mentioned
8. Be thorough - a complete resume might have 3-10+ bullet points per role`,
		extractionSchema, t.SeniorYears, t.SeniorYears, t.ExecYears, t.ExecYears)
}

// extractionUserPrompt embeds the literal transcript between explicit
// delimiter markers.
func extractionUserPrompt(rawText string) string {
	return fmt.Sprintf(`Parse this complete resume and extract ALL information into the JSON structure.
Do not skip any work experience, bullet points, or skills.

---RESUME TEXT START---
%s
---RESUME TEXT END---

Return ONLY the complete JSON object with all resume content.`, rawText)
}
