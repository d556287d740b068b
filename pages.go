package main

// Static pages served by the verify-email endpoint. The link lands in a
// mail client, so the outcome is rendered as plain HTML rather than JSON.

const verifyEmailSuccessPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Email Verified</title>
  <style>
    body { font-family: Arial, sans-serif; background: #f3f4f6; display: flex; flex-direction: column; align-items: center; justify-content: center; height: 100vh; }
    .card { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 4px 10px rgba(0, 0, 0, 0.1); text-align: center; }
    .btn { margin-top: 20px; padding: 10px 20px; background: #2563eb; color: white; text-decoration: none; border-radius: 5px; font-weight: bold; }
  </style>
</head>
<body>
  <div class="card">
    <h2>Email Successfully Verified!</h2>
    <p>You can now continue to the application.</p>
    <a class="btn" href="/">Continue</a>
  </div>
</body>
</html>`

const verifyEmailFailurePage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Email Verification Failed</title>
  <style>
    body { font-family: Arial, sans-serif; background: #f3f4f6; display: flex; flex-direction: column; align-items: center; justify-content: center; height: 100vh; }
    .card { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 4px 10px rgba(0, 0, 0, 0.1); text-align: center; }
    .btn { margin-top: 20px; padding: 10px 20px; background: #2563eb; color: white; text-decoration: none; border-radius: 5px; font-weight: bold; }
  </style>
</head>
<body>
  <div class="card">
    <h2>Email verification failed</h2>
    <p>Token is either expired or invalid</p>
    <a class="btn" href="/">Continue</a>
  </div>
</body>
</html>`
