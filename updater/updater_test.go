package updater

import (
	"context"
	"crypto/sha256"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/tuf-client/config"
	"github.com/docker/tuf-client/data"
	"github.com/docker/tuf-client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLocalFixture builds an empty local cache directory; the caller must
// write a bootstrap root.json to it (via local.SetMetadata) before
// calling newUpdater, since New requires one to already exist.
func newLocalFixture(t *testing.T) *store.LocalStore {
	t.Helper()
	dir := t.TempDir()
	local, err := store.NewLocalStore(filepath.Join(dir, "metadata"), filepath.Join(dir, "targets"))
	require.NoError(t, err)
	return local
}

func newUpdater(t *testing.T, remote *fakeRemote, local *store.LocalStore) *Updater {
	t.Helper()
	repo := config.RepositoryConf{
		MetadataBaseURL: remote.baseURL(),
		TargetsBaseURL:  remote.baseURL(),
	}
	u, err := New(repo, config.DefaultUpdaterConf(), local, store.NewHTTPFetcher(5*time.Second))
	require.NoError(t, err)
	return u
}

func sha256Of(b []byte) data.HexBytes {
	sum := sha256.Sum256(b)
	return sum[:]
}

// scenario 1: happy refresh.
func TestScenarioHappyRefresh(t *testing.T) {
	remote := newFakeRemote(t)
	expires := time.Now().Add(24 * time.Hour)
	root, _, timestampKey, snapshotKey, targetsKey := newBootstrapRoot(t, expires)

	targets := data.NewTargets(expires)
	fileContent := []byte("Contents of file1 for testing.")
	targets.Signed.Targets["file1.txt"] = data.TargetFiles{
		Length: int64(len(fileContent)),
		Hashes: data.Hashes{"sha256": sha256Of(fileContent)},
	}
	sign(t, targets, targetsKey)
	remote.set("1.targets.json", bytesOf(t, targets))

	snap := data.NewSnapshot(expires)
	snap.Signed.Meta["targets.json"] = data.MetaFiles{Version: 1}
	sign(t, snap, snapshotKey)
	remote.set("1.snapshot.json", bytesOf(t, snap))

	stamp := data.NewTimestamp(expires)
	stamp.Signed.Meta["snapshot.json"] = data.MetaFiles{Version: 1}
	sign(t, stamp, timestampKey)
	remote.set("timestamp.json", bytesOf(t, stamp))

	local := newLocalFixture(t)
	require.NoError(t, local.SetMetadata(data.RoleRoot, bytesOf(t, root)))
	u := newUpdater(t, remote, local)

	require.NoError(t, u.Refresh(context.Background()))

	tf, role, err := u.GetTargetInfo(context.Background(), "file1.txt")
	require.NoError(t, err)
	require.NotNil(t, tf)
	assert.Equal(t, data.RoleTargets, role)
	assert.Equal(t, int64(len(fileContent)), tf.Length)
}

// scenario 2: root rotation.
func TestScenarioRootRotation(t *testing.T) {
	remote := newFakeRemote(t)
	expires := time.Now().Add(24 * time.Hour)
	rootV1, rootKeyA, _, snapshotKey, targetsKey := newBootstrapRoot(t, expires)

	rootKeyB := newTestKey(t)
	rootV2 := data.NewRoot(expires)
	rootV2.Signed.Version = 2
	rootV2.Signed.Keys[rootKeyA.id] = rootKeyA.key
	rootV2.Signed.Keys[rootKeyB.id] = rootKeyB.key
	rootV2.Signed.Keys[snapshotKey.id] = snapshotKey.key
	rootV2.Signed.Keys[targetsKey.id] = targetsKey.key
	rootV2.Signed.Roles[data.RoleRoot].KeyIDs = []string{rootKeyA.id}
	rootV2.Signed.Roles[data.RoleTimestamp].KeyIDs = []string{rootKeyB.id}
	rootV2.Signed.Roles[data.RoleSnapshot].KeyIDs = []string{snapshotKey.id}
	rootV2.Signed.Roles[data.RoleTargets].KeyIDs = []string{targetsKey.id}
	sign(t, rootV2, rootKeyA, rootKeyB)
	remote.set("2.root.json", bytesOf(t, rootV2))
	// 3.root.json deliberately absent (404)

	stamp := data.NewTimestamp(expires)
	stamp.Signed.Meta["snapshot.json"] = data.MetaFiles{Version: 1}
	sign(t, stamp, rootKeyB)
	remote.set("timestamp.json", bytesOf(t, stamp))

	snap := data.NewSnapshot(expires)
	snap.Signed.Meta["targets.json"] = data.MetaFiles{Version: 1}
	sign(t, snap, snapshotKey)
	remote.set("1.snapshot.json", bytesOf(t, snap))

	targets := data.NewTargets(expires)
	sign(t, targets, targetsKey)
	remote.set("1.targets.json", bytesOf(t, targets))

	local := newLocalFixture(t)
	require.NoError(t, local.SetMetadata(data.RoleRoot, bytesOf(t, rootV1)))
	u := newUpdater(t, remote, local)

	require.NoError(t, u.Refresh(context.Background()))
	assert.Equal(t, int64(2), u.TrustedSet().Root.Signed.Version)
}

// scenario 3: rollback attack.
func TestScenarioRollbackAttackRejected(t *testing.T) {
	remote := newFakeRemote(t)
	expires := time.Now().Add(24 * time.Hour)
	root, _, timestampKey, _, _ := newBootstrapRoot(t, expires)
	local := newLocalFixture(t)
	require.NoError(t, local.SetMetadata(data.RoleRoot, bytesOf(t, root)))
	u := newUpdater(t, remote, local)

	stampV5 := data.NewTimestamp(expires)
	stampV5.Signed.Version = 5
	stampV5.Signed.Meta["snapshot.json"] = data.MetaFiles{Version: 10}
	sign(t, stampV5, timestampKey)
	_, err := u.TrustedSet().UpdateTimestamp(bytesOf(t, stampV5))
	require.NoError(t, err)

	stampV4 := data.NewTimestamp(expires)
	stampV4.Signed.Version = 4
	stampV4.Signed.Meta["snapshot.json"] = data.MetaFiles{Version: 9}
	sign(t, stampV4, timestampKey)
	_, err = u.TrustedSet().UpdateTimestamp(bytesOf(t, stampV4))
	require.Error(t, err)
	var badVersion data.ErrBadVersion
	require.ErrorAs(t, err, &badVersion)
	assert.Equal(t, int64(5), u.TrustedSet().Timestamp.Signed.Version)
}

// scenario 4: equal version timestamp is a no-op.
func TestScenarioEqualVersionTimestampIsNoOp(t *testing.T) {
	remote := newFakeRemote(t)
	expires := time.Now().Add(24 * time.Hour)
	root, _, timestampKey, snapshotKey, targetsKey := newBootstrapRoot(t, expires)

	snap := data.NewSnapshot(expires)
	snap.Signed.Meta["targets.json"] = data.MetaFiles{Version: 1}
	sign(t, snap, snapshotKey)
	remote.set("1.snapshot.json", bytesOf(t, snap))

	targets := data.NewTargets(expires)
	sign(t, targets, targetsKey)
	remote.set("1.targets.json", bytesOf(t, targets))

	stamp := data.NewTimestamp(expires)
	stamp.Signed.Version = 5
	stamp.Signed.Meta["snapshot.json"] = data.MetaFiles{Version: 1}
	sign(t, stamp, timestampKey)
	remote.set("timestamp.json", bytesOf(t, stamp))

	local := newLocalFixture(t)
	require.NoError(t, local.SetMetadata(data.RoleRoot, bytesOf(t, root)))
	u := newUpdater(t, remote, local)

	_, err := u.TrustedSet().UpdateTimestamp(bytesOf(t, stamp))
	require.NoError(t, err)

	require.NoError(t, u.Refresh(context.Background()))
	assert.Equal(t, int64(5), u.TrustedSet().Timestamp.Signed.Version)
}

// scenario 5: delegation terminating.
func TestScenarioDelegationTerminating(t *testing.T) {
	remote := newFakeRemote(t)
	expires := time.Now().Add(24 * time.Hour)
	root, _, timestampKey, snapshotKey, targetsKey := newBootstrapRoot(t, expires)

	aKey := newTestKey(t)
	bKey := newTestKey(t)
	cKey := newTestKey(t)

	roleA := data.DelegatedRole{Name: "A", KeyIDs: []string{aKey.id}, Threshold: 1, Paths: []string{"*.txt"}}
	roleB := data.DelegatedRole{Name: "B", KeyIDs: []string{bKey.id}, Threshold: 1, Terminating: true, Paths: []string{"foo/*"}}
	roleC := data.DelegatedRole{Name: "C", KeyIDs: []string{cKey.id}, Threshold: 1, Paths: []string{"foo/*"}}

	targets := data.NewTargets(expires)
	targets.Signed.Delegations = &data.Delegations{
		Keys:  map[string]*data.Key{aKey.id: aKey.key, bKey.id: bKey.key, cKey.id: cKey.key},
		Roles: []data.DelegatedRole{roleA, roleB, roleC},
	}
	sign(t, targets, targetsKey)
	remote.set("1.targets.json", bytesOf(t, targets))

	aTargets := data.NewTargets(expires)
	sign(t, aTargets, aKey)
	remote.set("1.A.json", bytesOf(t, aTargets))

	bTargets := data.NewTargets(expires)
	bTargets.Signed.Targets["foo/bar"] = data.TargetFiles{Length: 2, Hashes: data.Hashes{"sha256": sha256Of([]byte("hi"))}}
	sign(t, bTargets, bKey)
	remote.set("1.B.json", bytesOf(t, bTargets))

	cTargets := data.NewTargets(expires)
	cTargets.Signed.Targets["foo/bar"] = data.TargetFiles{Length: 3, Hashes: data.Hashes{"sha256": sha256Of([]byte("bye"))}}
	sign(t, cTargets, cKey)
	remote.set("1.C.json", bytesOf(t, cTargets))

	snap := data.NewSnapshot(expires)
	snap.Signed.Meta["targets.json"] = data.MetaFiles{Version: 1}
	snap.Signed.Meta["A.json"] = data.MetaFiles{Version: 1}
	snap.Signed.Meta["B.json"] = data.MetaFiles{Version: 1}
	snap.Signed.Meta["C.json"] = data.MetaFiles{Version: 1}
	sign(t, snap, snapshotKey)
	remote.set("1.snapshot.json", bytesOf(t, snap))

	stamp := data.NewTimestamp(expires)
	stamp.Signed.Meta["snapshot.json"] = data.MetaFiles{Version: 1}
	sign(t, stamp, timestampKey)
	remote.set("timestamp.json", bytesOf(t, stamp))

	local := newLocalFixture(t)
	require.NoError(t, local.SetMetadata(data.RoleRoot, bytesOf(t, root)))
	u := newUpdater(t, remote, local)
	require.NoError(t, u.Refresh(context.Background()))

	tf, role, err := u.GetTargetInfo(context.Background(), "foo/bar")
	require.NoError(t, err)
	require.NotNil(t, tf)
	assert.Equal(t, "B", role)
	assert.Equal(t, int64(2), tf.Length)
}

// scenario 6: length cap.
func TestScenarioLengthCapRejectsOversizedTimestamp(t *testing.T) {
	remote := newFakeRemote(t)
	expires := time.Now().Add(24 * time.Hour)
	root, _, timestampKey, _, _ := newBootstrapRoot(t, expires)

	stamp := data.NewTimestamp(expires)
	stamp.Signed.Meta["snapshot.json"] = data.MetaFiles{Version: 1}
	sign(t, stamp, timestampKey)
	raw := bytesOf(t, stamp)
	// pad the document well past the default 16KB timestamp cap
	padded := append(raw[:len(raw)-1], []byte(`,"padding":"`+string(make([]byte, 10*1024*1024))+`"}`)...)
	remote.set("timestamp.json", padded)

	local := newLocalFixture(t)
	require.NoError(t, local.SetMetadata(data.RoleRoot, bytesOf(t, root)))
	u := newUpdater(t, remote, local)

	err := u.Refresh(context.Background())
	require.Error(t, err)

	_, getErr := local.GetMetadata(data.RoleTimestamp)
	assert.Error(t, getErr, "timestamp must not have been persisted")
}
