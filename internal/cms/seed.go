package cms

import "fmt"

// Seed populates every empty collection with its sample records,
// through the repositories' own Create so ids and timestamps are
// generated normally. Safe to call on every startup: collections that
// already hold data are left alone.
func (c *CMS) Seed() error {
	if err := c.seedSettings(); err != nil {
		return err
	}
	if err := c.seedProjects(); err != nil {
		return err
	}
	if err := c.seedSkills(); err != nil {
		return err
	}
	if err := c.seedExperiences(); err != nil {
		return err
	}
	if err := c.seedEducation(); err != nil {
		return err
	}
	if err := c.seedSummaries(); err != nil {
		return err
	}
	return c.seedFiles()
}

func (c *CMS) seedSettings() error {
	current, err := c.Settings.Get()
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if current != nil {
		return nil
	}
	_, err = c.Settings.Update(func(s *Settings) {
		s.SiteName = "FitLearned"
		s.SiteDescription = "AI-powered document summarization platform for students and professionals"
		s.OwnerName = "Fitrah Andhika Ramadhan"
		s.OwnerTitle = "Frontend Developer & AI Enthusiast"
		s.OwnerBio = "Mahasiswa S1 Sistem Informasi di Telkom University yang passionate dalam mengembangkan solusi teknologi untuk memecahkan masalah nyata. Sedang belajar Data Analytics & Software Development dengan AI, berfokus pada frontend development dan teknologi web modern."
		s.Email = "fitrah.andhika@email.com"
		s.Phone = "+62 877 6028 7039"
		s.Location = "Bandung, Indonesia"
		s.GitHub = "https://github.com/Fitrah-Andhika-Ramadhan/"
		s.Avatar = "/placeholder.svg?height=150&width=150"
		s.HeroImage = "/placeholder.svg?height=400&width=500"
	})
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func (c *CMS) seedProjects() error {
	existing, err := c.Projects.List()
	if err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []Project{
		{
			Title:           "FitLearned - AI Document Processor",
			Description:     "Platform untuk merangkum dokumen PDF dan Word menggunakan AI, membantu mahasiswa dan profesional menghemat waktu belajar.",
			LongDescription: "FitLearned adalah platform AI-powered yang dirancang khusus untuk membantu mahasiswa dan profesional dalam memproses dokumen dengan lebih efisien. Aplikasi ini menggunakan teknologi AI canggih untuk mengekstrak informasi penting dari dokumen PDF dan Word, kemudian mengubahnya menjadi ringkasan yang mudah dipahami beserta poin-poin kunci.",
			Tech:            []string{"Next.js", "TypeScript", "AI Integration", "Tailwind CSS", "React"},
			GitHub:          "https://github.com/Fitrah-Andhika-Ramadhan/fitlearned",
			Demo:            "/summarizer",
			Image:           "/placeholder.svg?height=200&width=300&text=FitLearned",
			Featured:        true,
			Status:          StatusPublished,
			Category:        "Web Application",
		},
		{
			Title:           "E-Learning Management System",
			Description:     "Sistem manajemen pembelajaran online dengan fitur video streaming, quiz interaktif, dan tracking progress.",
			LongDescription: "Sistem LMS lengkap yang dibangun dengan Laravel dan Vue.js, menyediakan platform pembelajaran online yang komprehensif dengan fitur-fitur modern seperti video streaming, quiz interaktif, tracking progress siswa, dan dashboard analytics untuk instructor.",
			Tech:            []string{"Laravel", "Vue.js", "MySQL", "Redis", "PHP"},
			GitHub:          "https://github.com/Fitrah-Andhika-Ramadhan/elearning-lms",
			Demo:            "https://elearning-lms-i3jk.vercel.app/",
			Image:           "/placeholder.svg?height=200&width=300&text=E-Learning",
			Featured:        true,
			Status:          StatusPublished,
			Category:        "Web Application",
		},
		{
			Title:           "Smart Campus Mobile App",
			Description:     "Aplikasi mobile untuk kampus dengan fitur jadwal kuliah, absensi digital, dan notifikasi akademik.",
			LongDescription: "Aplikasi mobile yang memudahkan mahasiswa dalam mengakses informasi kampus, melihat jadwal kuliah, melakukan absensi digital, dan menerima notifikasi penting dari kampus.",
			Tech:            []string{"React Native", "Firebase", "Node.js", "Express"},
			GitHub:          "https://github.com/Fitrah-Andhika-Ramadhan/smart-campus",
			Demo:            "#",
			Image:           "/placeholder.svg?height=200&width=300&text=Smart+Campus",
			Featured:        false,
			Status:          StatusPublished,
			Category:        "Mobile Application",
		},
	}
	for _, p := range samples {
		if _, err := c.Projects.Create(p); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}
	return nil
}

func (c *CMS) seedSkills() error {
	existing, err := c.Skills.List()
	if err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []Skill{
		{Name: "JavaScript", Level: 90, Category: SkillFrontend, Order: 1},
		{Name: "TypeScript", Level: 85, Category: SkillFrontend, Order: 2},
		{Name: "React", Level: 88, Category: SkillFrontend, Order: 3},
		{Name: "Next.js", Level: 85, Category: SkillFrontend, Order: 4},
		{Name: "Vue.js", Level: 80, Category: SkillFrontend, Order: 5},
		{Name: "HTML5", Level: 95, Category: SkillFrontend, Order: 6},
		{Name: "CSS3", Level: 90, Category: SkillFrontend, Order: 7},
		{Name: "Tailwind CSS", Level: 88, Category: SkillFrontend, Order: 8},
		{Name: "Node.js", Level: 82, Category: SkillBackend, Order: 9},
		{Name: "Laravel", Level: 80, Category: SkillBackend, Order: 10},
		{Name: "PHP", Level: 78, Category: SkillBackend, Order: 11},
		{Name: "Python", Level: 75, Category: SkillBackend, Order: 12},
		{Name: "Express.js", Level: 80, Category: SkillBackend, Order: 13},
		{Name: "MySQL", Level: 85, Category: SkillDatabase, Order: 14},
		{Name: "PostgreSQL", Level: 80, Category: SkillDatabase, Order: 15},
		{Name: "MongoDB", Level: 78, Category: SkillDatabase, Order: 16},
		{Name: "Redis", Level: 70, Category: SkillDatabase, Order: 17},
		{Name: "Git", Level: 90, Category: SkillTools, Order: 18},
		{Name: "Docker", Level: 70, Category: SkillTools, Order: 19},
		{Name: "AWS", Level: 65, Category: SkillTools, Order: 20},
		{Name: "Figma", Level: 75, Category: SkillTools, Order: 21},
	}
	for _, s := range samples {
		if _, err := c.Skills.Create(s); err != nil {
			return fmt.Errorf("seed skills: %w", err)
		}
	}
	return nil
}

func (c *CMS) seedExperiences() error {
	existing, err := c.Experiences.List()
	if err != nil {
		return fmt.Errorf("seed experiences: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []Experience{
		{
			Title:       "Frontend Developer Student",
			Company:     "Telkom University",
			Period:      "2021 - Present",
			Description: "Currently studying Data Analytics & Software Development with AI, focusing on frontend development and modern web technologies.",
			Achievements: []string{
				"Learning React, Next.js, and modern JavaScript frameworks",
				"Developing AI-integrated web applications like FitLearned",
				"Building responsive and user-friendly interfaces",
				"Participating in programming communities and hackathons",
				"Focus on frontend development and AI integration",
			},
			Current: true,
			Order:   1,
		},
		{
			Title:       "Freelance Web Developer",
			Company:     "Various Clients",
			Period:      "Jan 2023 - Present",
			Description: "Mengerjakan berbagai proyek web development untuk UMKM dan startup lokal, membantu mereka membangun presence online yang kuat.",
			Achievements: []string{
				"Menyelesaikan 10+ proyek web development",
				"Membantu klien meningkatkan online presence dan penjualan",
				"Memberikan maintenance dan support berkelanjutan",
				"Menggunakan teknologi modern seperti React, Laravel, dan Vue.js",
				"Membangun aplikasi e-commerce dan company profile",
			},
			Current: true,
			Order:   2,
		},
	}
	for _, e := range samples {
		if _, err := c.Experiences.Create(e); err != nil {
			return fmt.Errorf("seed experiences: %w", err)
		}
	}
	return nil
}

func (c *CMS) seedEducation() error {
	existing, err := c.Education.List()
	if err != nil {
		return fmt.Errorf("seed education: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	_, err = c.Education.Create(Education{
		Degree: "S1 Sistem Informasi",
		School: "Telkom University",
		Period: "2021 - 2025",
		GPA:    "3.75",
		Achievements: []string{
			"Currently studying Data Analytics & Software Development with AI",
			"Active in programming communities and hackathons",
			"Focus on frontend development and AI integration",
			"Relevant coursework: Database Systems, Web Programming, AI & Machine Learning",
		},
		Current: true,
		Order:   1,
	})
	if err != nil {
		return fmt.Errorf("seed education: %w", err)
	}
	return nil
}

func (c *CMS) seedSummaries() error {
	existing, err := c.Summaries.List()
	if err != nil {
		return fmt.Errorf("seed summaries: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []Summary{
		{
			Title:   "Machine Learning Fundamentals",
			Summary: "This document discusses the fundamental principles of machine learning and artificial intelligence. It covers various algorithms, their applications, and the importance of data preprocessing in achieving accurate results.",
			KeyPoints: []string{
				"ML algorithms require quality data preprocessing",
				"Neural networks are fundamental to modern AI systems",
				"Model optimization is crucial for performance",
			},
			FileType: "PDF",
			FileName: "ml-fundamentals.pdf",
			FileSize: "2.5 MB",
		},
		{
			Title:   "Web Development Best Practices",
			Summary: "A comprehensive guide covering modern web development practices, including responsive design, performance optimization, and security considerations.",
			KeyPoints: []string{
				"Responsive design is essential",
				"Performance optimization matters",
				"Security should be prioritized",
			},
			FileType: "DOCX",
			FileName: "web-dev-practices.docx",
			FileSize: "1.8 MB",
		},
	}
	for _, s := range samples {
		if _, err := c.Summaries.Create(s); err != nil {
			return fmt.Errorf("seed summaries: %w", err)
		}
	}
	return nil
}

func (c *CMS) seedFiles() error {
	existing, err := c.Files.List()
	if err != nil {
		return fmt.Errorf("seed files: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []StudyFile{
		{
			Name:        "Algoritma dan Struktur Data - Materi Lengkap.pdf",
			Type:        "PDF",
			Subject:     "Algoritma dan Struktur Data",
			Semester:    "Semester 3",
			Category:    "Materi Kuliah",
			Size:        "2.5 MB",
			Description: "Materi lengkap tentang algoritma sorting, searching, dan struktur data dasar",
		},
		{
			Name:        "Database Design - ER Diagram Examples.docx",
			Type:        "DOCX",
			Subject:     "Basis Data",
			Semester:    "Semester 4",
			Category:    "Tugas",
			Size:        "1.8 MB",
			Description: "Contoh-contoh ER Diagram untuk desain database sistem informasi",
		},
		{
			Name:        "Machine Learning - Linear Regression Notes.pdf",
			Type:        "PDF",
			Subject:     "Machine Learning",
			Semester:    "Semester 6",
			Category:    "Catatan",
			Size:        "3.2 MB",
			Description: "Catatan lengkap tentang linear regression dan implementasinya",
		},
	}
	for _, f := range samples {
		if _, err := c.Files.Create(f); err != nil {
			return fmt.Errorf("seed files: %w", err)
		}
	}
	return nil
}
