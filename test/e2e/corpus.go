// Package e2e provides end-to-end tests with a realistic applicant corpus and
// keyword test cases.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/rirekisho/internal/models"
)

// E2EApplicant is an applicant entry in the E2E corpus.
type E2EApplicant struct {
	ID   string
	Name string
	Role string
	CV   string
}

// KeywordTestCase defines a keyword query and the applicant ID(s) that must
// appear in the ranked results. At least one of ExpectedIDs must be present.
type KeywordTestCase struct {
	Keywords    []string
	ExpectedIDs []string
	Description string
}

// Corpus holds applicants and keyword test cases for E2E tests.
type Corpus struct {
	Applicants      []E2EApplicant
	TestCases       []KeywordTestCase
	TotalApplicants int
	TotalQueries    int
}

// BuildCorpus returns a corpus of applicants with varied CV content and
// keyword test cases. Each applicant has a signature skill that appears in no
// other CV, so queries can assert the correct applicant is returned.
func BuildCorpus() *Corpus {
	applicants := buildApplicants()
	cases := buildKeywordTestCases(applicants)
	return &Corpus{
		Applicants:      applicants,
		TestCases:       cases,
		TotalApplicants: len(applicants),
		TotalQueries:    len(cases),
	}
}

func buildApplicants() []E2EApplicant {
	profiles := []struct {
		name      string
		role      string
		signature string
		cv        string
	}{
		{"Taro Yamada", "Backend Engineer", "Golang", "Backend engineer with eight years of Golang experience. Built gRPC microservices, PostgreSQL schemas, and Redis caching layers."},
		{"Hanako Sato", "Platform Engineer", "Kubernetes", "Platform engineer focused on Kubernetes cluster operations, Helm chart packaging, and Terraform provisioning on AWS."},
		{"Jiro Suzuki", "Frontend Engineer", "React", "Frontend engineer building React applications with TypeScript, Redux state management, and Webpack tooling."},
		{"Yuki Tanaka", "Data Engineer", "Spark", "Data engineer running Spark pipelines over Kafka streams, loading warehouses in Snowflake, orchestrated with Airflow."},
		{"Kenji Watanabe", "ML Engineer", "PyTorch", "Machine learning engineer training PyTorch models, serving with FastAPI, tracking experiments in MLflow."},
		{"Aiko Ito", "SRE", "Prometheus", "Site reliability engineer. Prometheus alerting, Grafana dashboards, incident response, and capacity planning."},
		{"Shota Nakamura", "Mobile Engineer", "Kotlin", "Android developer shipping Kotlin apps with Jetpack Compose, Room persistence, and Firebase analytics."},
		{"Mei Kobayashi", "iOS Engineer", "Swift", "iOS engineer writing Swift with SwiftUI, Combine, and Core Data. App Store release management."},
		{"Ryo Kato", "Security Engineer", "Pentesting", "Security engineer. Pentesting web applications, OWASP threat modeling, Burp Suite, and secure code review."},
		{"Sakura Yoshida", "Database Administrator", "Oracle", "DBA managing Oracle and MySQL fleets. Query tuning, replication, point-in-time recovery, and migrations."},
		{"Daichi Yamamoto", "DevOps Engineer", "Ansible", "DevOps engineer automating with Ansible and Jenkins pipelines, Docker image builds, and Nginx load balancing."},
		{"Rin Sasaki", "QA Engineer", "Selenium", "QA engineer writing Selenium browser suites, Cypress component tests, and REST API tests with Postman."},
		{"Haruto Yamaguchi", "Embedded Engineer", "FreeRTOS", "Embedded engineer on FreeRTOS firmware in C, ARM Cortex targets, CAN bus protocols, and JTAG debugging."},
		{"Yui Matsumoto", "Data Scientist", "Pandas", "Data scientist using Pandas and scikit-learn for churn modeling, Jupyter notebooks, and Tableau reporting."},
		{"Sota Inoue", "Game Developer", "Unity", "Game developer building Unity titles in C#, shader programming, and multiplayer netcode."},
		{"Akari Kimura", "Cloud Architect", "CloudFormation", "Cloud architect designing AWS landing zones with CloudFormation, VPC networking, and IAM policy design."},
		{"Kaito Hayashi", "Network Engineer", "BGP", "Network engineer operating BGP peering, OSPF routing, Cisco and Juniper hardware, and VPN tunnels."},
		{"Hina Shimizu", "Fullstack Engineer", "Django", "Fullstack engineer with Django and Vue.js, Celery task queues, and Stripe payment integration."},
		{"Ren Mori", "Blockchain Engineer", "Solidity", "Blockchain engineer writing Solidity smart contracts, Hardhat test harnesses, and Ethereum node operations."},
		{"Koharu Abe", "Technical Writer", "Docusaurus", "Technical writer maintaining Docusaurus developer portals, OpenAPI reference docs, and style guides."},
		{"Yuto Ikeda", "Search Engineer", "Elasticsearch", "Search engineer tuning Elasticsearch relevance, analyzers, and ingest pipelines for product catalogs."},
		{"Ichika Hashimoto", "Compiler Engineer", "LLVM", "Compiler engineer working on LLVM optimization passes, MLIR lowering, and C++ toolchain internals."},
		{"Minato Ishikawa", "Payments Engineer", "PCI", "Payments engineer building PCI compliant card processing, ledger reconciliation, and fraud scoring in Java."},
		{"Emma Ogawa", "Bioinformatics Engineer", "Nextflow", "Bioinformatics engineer running Nextflow genomics pipelines, BWA alignment, and variant calling at scale."},
		{"Riku Goto", "Graphics Engineer", "Vulkan", "Graphics engineer writing Vulkan renderers, GLSL shaders, and GPU profiling tools in C++."},
		{"Mio Hasegawa", "Product Engineer", "Figma", "Product engineer prototyping in Figma, shipping Next.js features, and running A/B experiments."},
		{"Sora Fujita", "Streaming Engineer", "Flink", "Streaming engineer operating Flink jobs over Kafka, exactly-once sinks, and watermark tuning."},
		{"Nao Okada", "Erlang Engineer", "Elixir", "Distributed systems engineer writing Elixir on the BEAM, Phoenix channels, and OTP supervision trees."},
		{"Itsuki Maeda", "Robotics Engineer", "ROS", "Robotics engineer integrating ROS nodes, LiDAR perception, and motion planning in Python and C++."},
		{"Honoka Murakami", "Localization Engineer", "i18n", "Localization engineer building i18n pipelines, ICU message formats, and translation memory tooling."},
	}

	out := make([]E2EApplicant, 0, len(profiles))
	for i, p := range profiles {
		out = append(out, E2EApplicant{
			ID:   fmt.Sprintf("e2e-app-%03d", i+1),
			Name: p.name,
			Role: p.role,
			CV:   p.cv,
		})
	}
	return out
}

func buildKeywordTestCases(applicants []E2EApplicant) []KeywordTestCase {
	// Single-keyword cases: each signature skill appears in exactly one CV.
	signatures := []string{
		"golang", "kubernetes", "react", "spark", "pytorch", "prometheus",
		"kotlin", "swift", "pentesting", "oracle", "ansible", "selenium",
		"freertos", "pandas", "unity", "cloudformation", "bgp", "django",
		"solidity", "docusaurus", "elasticsearch", "llvm", "nextflow",
		"vulkan", "figma", "flink", "elixir", "i18n",
	}
	var cases []KeywordTestCase
	for _, sig := range signatures {
		var expected []string
		for _, a := range applicants {
			if cvContains(a, sig) {
				expected = append(expected, a.ID)
			}
		}
		if len(expected) == 0 {
			continue
		}
		cases = append(cases, KeywordTestCase{
			Keywords:    []string{sig},
			ExpectedIDs: expected,
			Description: fmt.Sprintf("keyword %q", sig),
		})
	}
	// Multi-keyword cases: applicants covering more keywords must rank first.
	multi := [][]string{
		{"golang", "grpc"},
		{"kubernetes", "terraform"},
		{"kafka", "flink"},
		{"python", "lidar"},
	}
	for _, kws := range multi {
		var expected []string
		for _, a := range applicants {
			all := true
			for _, kw := range kws {
				if !cvContains(a, kw) {
					all = false
					break
				}
			}
			if all {
				expected = append(expected, a.ID)
			}
		}
		if len(expected) == 0 {
			continue
		}
		cases = append(cases, KeywordTestCase{
			Keywords:    kws,
			ExpectedIDs: expected,
			Description: fmt.Sprintf("keywords %v", kws),
		})
	}
	return cases
}

func cvContains(a E2EApplicant, keyword string) bool {
	return strings.Contains(strings.ToLower(a.CV), strings.ToLower(keyword))
}

// ToApplicantInputs converts the corpus to indexer inputs.
func (c *Corpus) ToApplicantInputs() []*models.ApplicantInput {
	out := make([]*models.ApplicantInput, len(c.Applicants))
	for i := range c.Applicants {
		a := &c.Applicants[i]
		out[i] = &models.ApplicantInput{
			ID:   a.ID,
			Name: a.Name,
			Role: a.Role,
			Text: a.CV,
		}
	}
	return out
}
