package config_test

import (
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("DefaultConfig", func() {
	It("matches the reference machine parameters", func() {
		cfg := config.DefaultConfig()
		Expect(cfg.NumRegisters).To(Equal(11))
		Expect(cfg.MemorySize).To(Equal(1024))
		Expect(cfg.NumLoadBuffers).To(Equal(2))
		Expect(cfg.NumROBEntries).To(Equal(6))
		Expect(cfg.NumAddStations).To(Equal(3))
		Expect(cfg.NumMultStations).To(Equal(2))
		Expect(cfg.AddLatency).To(Equal(2))
		Expect(cfg.SubLatency).To(Equal(2))
		Expect(cfg.MultLatency).To(Equal(10))
		Expect(cfg.DivLatency).To(Equal(20))
		Expect(cfg.LoadLatency).To(Equal(2))
		Expect(cfg.Validate()).To(Succeed())
	})
})

var _ = Describe("SaveConfig / LoadConfig round trip", func() {
	It("reloads exactly what was saved", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "config.json")

		original := config.DefaultConfig()
		original.NumROBEntries = 1
		original.NumLoadBuffers = 1

		Expect(original.SaveConfig(path)).To(Succeed())

		loaded, err := config.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(original))
	})

	It("rejects an invalid configuration", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "bad.json")

		bad := config.DefaultConfig()
		bad.NumROBEntries = 0
		Expect(bad.SaveConfig(path)).To(Succeed())

		_, err := config.LoadConfig(path)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Clone", func() {
	It("returns an independent copy", func() {
		cfg := config.DefaultConfig()
		clone := cfg.Clone()
		clone.NumROBEntries = 99
		Expect(cfg.NumROBEntries).To(Equal(6))
	})
})
